// Package engine provides the segregated-fit allocation engine backing a
// heap.
//
// # Overview
//
// The engine carves variable-sized blocks out of one or more registered
// pools (contiguous byte regions supplied by the caller). It keeps
// segregated free lists bucketed by size class, splits oversized free
// blocks on allocation, and coalesces adjacent free blocks on free, so
// both operations stay O(~1) for steady-state workloads.
//
// # Bookkeeping
//
// All block metadata lives out of band in Go structs keyed by block
// address. The registered regions carry user payload only; the engine
// never writes headers or trailers into them, so a stray user write can
// corrupt at most its own block, never the allocator state.
//
// # Size classes
//
// Free lists are segregated by a configurable class table: linear
// increments for small sizes, geometric growth up to MediumMax, and a
// single unsorted list for anything larger. See Config for presets.
//
// # Usage
//
//	fl := engine.New(nil) // DefaultConfig
//	if err := fl.AddPool(region); err != nil {
//	    return err
//	}
//	addr, buf, err := fl.AllocAligned(256, 16)
//	...
//	err = fl.Free(addr)
//
// # Thread safety
//
// Engine instances are not thread-safe. Callers must serialize access
// externally; the heap package does so with a per-heap mutex.
package engine
