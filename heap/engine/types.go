package engine

// Engine is the allocation engine consumed by the heap package.
//
// Implementations:
//   - FreeList: segregated-fit allocator with split and coalesce
//
// The interface mirrors what a heap needs from any engine: register
// backing pools, allocate aligned blocks across them, free by address,
// and tear down. PoolOverhead reports how many bytes of a registered
// region the engine consumes for its own bookkeeping, so callers can
// size new pools such that a pending request is guaranteed to fit.
type Engine interface {
	// AddPool registers a contiguous region as an additional backing
	// pool. The engine owns the region's contents until Release.
	AddPool(region []byte) error

	// AllocAligned allocates size bytes whose address is a multiple of
	// align. Returns the block address, the block payload, and any
	// error. align zero means the engine's minimum (8 bytes).
	AllocAligned(size, align int) (uintptr, []byte, error)

	// Free reclaims a block previously returned by AllocAligned.
	Free(addr uintptr) error

	// PoolOverhead returns the per-pool bookkeeping bytes taken out of
	// a registered region.
	PoolOverhead() int

	// Release drops all engine state. Registered regions are not
	// returned to their provider; that is the caller's job.
	Release()
}

// Stats is a point-in-time snapshot of engine state.
type Stats struct {
	Pools           int   // registered pools
	FreeBlocks      int   // blocks on free lists (large list included)
	FreeBytes       int64 // bytes on free lists
	AllocatedBlocks int   // live blocks
	AllocatedBytes  int64 // bytes in live blocks (after rounding)
	Splits          int   // free-block splits performed
	Coalesces       int   // neighbor merges performed
}
