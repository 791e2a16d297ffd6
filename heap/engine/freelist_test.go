package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, poolSize int) *FreeList {
	t.Helper()
	fl := New(nil)
	require.NoError(t, fl.AddPool(make([]byte, poolSize)))
	return fl
}

func TestAllocBasic(t *testing.T) {
	fl := newTestEngine(t, 4096)

	addr, buf, err := fl.AllocAligned(100, 0)
	require.NoError(t, err)
	require.NotZero(t, addr)
	require.GreaterOrEqual(t, len(buf), 100)
	require.Zero(t, addr%8, "default alignment is 8")

	// Payload must be writable without disturbing the engine.
	for i := range buf {
		buf[i] = 0xEE
	}
	require.NoError(t, fl.Free(addr))
}

func TestAllocNoPools(t *testing.T) {
	fl := New(nil)
	_, _, err := fl.AllocAligned(16, 8)
	require.ErrorIs(t, err, ErrNoSpace)
}

func TestAllocAlignment(t *testing.T) {
	fl := newTestEngine(t, 1<<20)

	for _, align := range []int{8, 16, 32, 64, 128, 256, 512, 1024, 4096} {
		addr, _, err := fl.AllocAligned(24, align)
		require.NoError(t, err, "align %d", align)
		require.Zerof(t, addr%uintptr(align), "addr 0x%x not %d-aligned", addr, align)
	}
}

func TestAllocBadRequest(t *testing.T) {
	fl := newTestEngine(t, 4096)

	_, _, err := fl.AllocAligned(0, 8)
	require.ErrorIs(t, err, ErrBadRequest)
	_, _, err = fl.AllocAligned(-5, 8)
	require.ErrorIs(t, err, ErrBadRequest)
	_, _, err = fl.AllocAligned(64, 3)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestAllocExhaustion(t *testing.T) {
	fl := newTestEngine(t, 4096)

	_, _, err := fl.AllocAligned(8192, 8)
	require.ErrorIs(t, err, ErrNoSpace)

	// A second pool makes the same request succeed.
	require.NoError(t, fl.AddPool(make([]byte, 16384)))
	addr, _, err := fl.AllocAligned(8192, 8)
	require.NoError(t, err)
	require.NoError(t, fl.Free(addr))
}

func TestFreeUnknownAddress(t *testing.T) {
	fl := newTestEngine(t, 4096)

	require.ErrorIs(t, fl.Free(0xdeadbeef), ErrBadAddress)

	addr, _, err := fl.AllocAligned(64, 8)
	require.NoError(t, err)
	require.NoError(t, fl.Free(addr))
	require.ErrorIs(t, fl.Free(addr), ErrBadAddress, "double free")
}

func TestFreeReusesSpace(t *testing.T) {
	fl := newTestEngine(t, 4096)

	addr1, _, err := fl.AllocAligned(1024, 8)
	require.NoError(t, err)
	require.NoError(t, fl.Free(addr1))

	addr2, _, err := fl.AllocAligned(1024, 8)
	require.NoError(t, err)
	require.Equal(t, addr1, addr2, "freed block should be reused")
}

func TestCoalesceNeighbors(t *testing.T) {
	fl := newTestEngine(t, 4096)

	// Carve the pool into three spans; the usable pool may start with a
	// small alignment trim, so sizes stay well under 4096 total.
	a, _, err := fl.AllocAligned(1024, 8)
	require.NoError(t, err)
	b, _, err := fl.AllocAligned(1024, 8)
	require.NoError(t, err)
	c, _, err := fl.AllocAligned(1024, 8)
	require.NoError(t, err)

	// Freeing a and b separately leaves fragments no single one of
	// which holds 2048 bytes unless they merge.
	require.NoError(t, fl.Free(a))
	require.NoError(t, fl.Free(b))

	addr, _, err := fl.AllocAligned(2048, 8)
	require.NoError(t, err, "adjacent frees should coalesce")
	require.Equal(t, a, addr)

	require.NoError(t, fl.Free(addr))
	require.NoError(t, fl.Free(c))

	stats := fl.Stats()
	require.Positive(t, stats.Coalesces)
	require.Zero(t, stats.AllocatedBlocks)
}

func TestFullPoolRecoversAfterFreeAll(t *testing.T) {
	fl := newTestEngine(t, 8192)

	var addrs []uintptr
	for {
		addr, _, err := fl.AllocAligned(512, 8)
		if err != nil {
			require.ErrorIs(t, err, ErrNoSpace)
			break
		}
		addrs = append(addrs, addr)
	}
	require.NotEmpty(t, addrs)

	for _, addr := range addrs {
		require.NoError(t, fl.Free(addr))
	}

	// Everything coalesced back: one allocation the size of the
	// original span must fit again.
	first, _, err := fl.AllocAligned(512*len(addrs), 8)
	require.NoError(t, err)
	require.NoError(t, fl.Free(first))
}

func TestAddPoolTooSmall(t *testing.T) {
	fl := New(nil)
	require.ErrorIs(t, fl.AddPool(nil), ErrBadPool)
	require.ErrorIs(t, fl.AddPool(make([]byte, 4)), ErrBadPool)
}

func TestPoolOverhead(t *testing.T) {
	fl := New(nil)
	require.Zero(t, fl.PoolOverhead(), "bookkeeping is out-of-band")
}

func TestReleasedEngineRejectsUse(t *testing.T) {
	fl := newTestEngine(t, 4096)
	addr, _, err := fl.AllocAligned(64, 8)
	require.NoError(t, err)

	fl.Release()

	_, _, err = fl.AllocAligned(64, 8)
	require.ErrorIs(t, err, ErrReleased)
	require.ErrorIs(t, fl.Free(addr), ErrReleased)
	require.ErrorIs(t, fl.AddPool(make([]byte, 4096)), ErrReleased)
}

func TestStatsAccounting(t *testing.T) {
	fl := newTestEngine(t, 4096)

	before := fl.Stats()
	require.Equal(t, 1, before.Pools)
	require.Zero(t, before.AllocatedBlocks)
	require.Positive(t, before.FreeBytes)

	addr, _, err := fl.AllocAligned(100, 8)
	require.NoError(t, err)

	mid := fl.Stats()
	require.Equal(t, 1, mid.AllocatedBlocks)
	require.Equal(t, int64(104), mid.AllocatedBytes, "size rounds to block granularity")
	require.Equal(t, before.FreeBytes-104, mid.FreeBytes)

	require.NoError(t, fl.Free(addr))
	after := fl.Stats()
	require.Zero(t, after.AllocatedBlocks)
	require.Equal(t, before.FreeBytes, after.FreeBytes)
}

func TestConfigPresets(t *testing.T) {
	for _, cfg := range []Config{ConfigFineGrained, ConfigBalanced, ConfigCoarse} {
		fl := New(&cfg)
		require.NoError(t, fl.AddPool(make([]byte, 1<<16)))

		addr, _, err := fl.AllocAligned(100, 16)
		require.NoError(t, err, cfg.Name)
		require.NoError(t, fl.Free(addr), cfg.Name)
	}
}
