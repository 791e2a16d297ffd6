// Package heap implements a growable, thread-safe heap with automatic
// leak detection.
//
// # Overview
//
// A Heap serves arbitrary allocate/free patterns from a chain of arenas:
// contiguous OS-backed regions registered as pools with a segregated-fit
// allocation engine. When no pool can satisfy a request, the heap
// reserves a new arena sized to guarantee the request fits, registers
// it, and retries once. Arenas are never returned to the OS before
// Close.
//
// Every successful allocation is tracked in a registry together with a
// bounded backtrace of its call site. Close walks the registry,
// most-recent allocation first, and reports each surviving allocation
// through the log sink with its size, address, and resolved call stack.
//
// # Usage
//
//	h, err := heap.New(heap.Options{GrowIncrement: 1 << 20})
//	if err != nil {
//	    return err
//	}
//
//	buf, err := h.Alloc(256, 16)
//	if err != nil {
//	    return err
//	}
//	// ... use buf ...
//	if err := h.Free(buf); err != nil {
//	    return err
//	}
//
//	// Close releases every arena and reports anything still live.
//	if err := h.Close(); err != nil {
//	    return err
//	}
//
// # Thread safety
//
// All Heap methods are safe for concurrent use. A single mutex per Heap
// serializes every mutating operation; two concurrent operations on the
// same Heap are totally ordered by lock acquisition. Distinct Heap
// instances share nothing — creating several heaps is the intended way
// to reduce contention.
//
// # Block contents
//
// Allocated blocks are not zeroed on reuse. A block handed out after a
// Free of an overlapping span may contain stale bytes.
//
// # Related packages
//
//   - github.com/heapkit/heapkit/heap/engine: the segregated-fit engine
//   - github.com/heapkit/heapkit/internal/mem: OS region reservation
//   - github.com/heapkit/heapkit/internal/stack: backtrace capture
package heap
