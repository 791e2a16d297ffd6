package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func trackerAddrs(tk *tracker) []uintptr {
	var out []uintptr
	tk.walk(func(r *record) { out = append(out, r.addr) })
	return out
}

func TestTrackerLIFOOrder(t *testing.T) {
	tk := newTracker()
	tk.record(0x1000, 16, nil)
	tk.record(0x2000, 32, nil)
	tk.record(0x3000, 64, nil)

	require.Equal(t, []uintptr{0x3000, 0x2000, 0x1000}, trackerAddrs(tk))
	require.Equal(t, 3, tk.count())
}

func TestTrackerRemoveHead(t *testing.T) {
	tk := newTracker()
	tk.record(0x1000, 16, nil)
	tk.record(0x2000, 32, nil)

	require.True(t, tk.remove(0x2000))
	require.Equal(t, []uintptr{0x1000}, trackerAddrs(tk))
}

func TestTrackerRemoveMiddle(t *testing.T) {
	tk := newTracker()
	tk.record(0x1000, 16, nil)
	tk.record(0x2000, 32, nil)
	tk.record(0x3000, 64, nil)

	require.True(t, tk.remove(0x2000))
	require.Equal(t, []uintptr{0x3000, 0x1000}, trackerAddrs(tk))
}

func TestTrackerRemoveTail(t *testing.T) {
	tk := newTracker()
	tk.record(0x1000, 16, nil)
	tk.record(0x2000, 32, nil)

	require.True(t, tk.remove(0x1000))
	require.Equal(t, []uintptr{0x2000}, trackerAddrs(tk))
}

func TestTrackerRemoveUnknown(t *testing.T) {
	tk := newTracker()
	tk.record(0x1000, 16, nil)

	require.False(t, tk.remove(0x9999))
	require.Equal(t, 1, tk.count())
}

func TestTrackerRemoveAll(t *testing.T) {
	tk := newTracker()
	addrs := []uintptr{0x1000, 0x2000, 0x3000, 0x4000}
	for _, a := range addrs {
		tk.record(a, 8, nil)
	}
	for _, a := range addrs {
		require.True(t, tk.remove(a))
	}
	require.Zero(t, tk.count())
	require.Empty(t, trackerAddrs(tk))
}
