package heap

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/heapkit/heapkit/heap/engine"
	"github.com/heapkit/heapkit/internal/stack"
)

// Heap is a growable, thread-safe heap with leak tracking. Create one
// with New; it is invalid after Close.
type Heap struct {
	mu sync.Mutex

	eng       engine.Engine
	prov      Provider
	logf      LogFunc
	symbolize func(pc uintptr) string

	growIncrement int
	maxFrames     int

	arenas     *arena
	arenaCount int
	reserved   int64 // total bytes ever reserved; never decreases

	registry *tracker

	allocs, frees uint64
	liveBytes     int64

	closed bool
}

// New creates an empty heap. No arena is reserved until the first
// allocation misses.
func New(opts Options) (*Heap, error) {
	if opts.GrowIncrement < 0 {
		return nil, fmt.Errorf("%w: grow increment %d", ErrBadSize, opts.GrowIncrement)
	}
	opts = opts.withDefaults()
	return &Heap{
		eng:           opts.Engine,
		prov:          opts.Provider,
		logf:          opts.Logf,
		symbolize:     opts.Symbolize,
		growIncrement: opts.GrowIncrement,
		maxFrames:     opts.MaxFrames,
		registry:      newTracker(),
	}, nil
}

// Alloc returns a block of size bytes whose address is a multiple of
// align. align zero means 8; otherwise it must be a power of two. On
// exhaustion the heap grows a new arena before failing; a failure to
// grow returns ErrOutOfMemory and leaves the heap usable.
func (h *Heap) Alloc(size, align int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	if align < 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadAlign, align)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHeapClosed
	}

	addr, buf, err := h.ensureCapacity(size, align)
	if err != nil {
		return nil, err
	}

	// Skip one frame so the innermost recorded call site is our caller.
	h.registry.record(addr, size, stack.Capture(1, h.maxFrames))
	h.allocs++
	h.liveBytes += int64(size)

	return buf[:size:size], nil
}

// Free returns a block obtained from Alloc. Freeing a block the heap
// does not know (including a double free) is rejected with
// ErrUnknownAddress and corrupts nothing.
func (h *Heap) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrUnknownAddress
	}
	addr := addrOf(buf)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHeapClosed
	}

	r, ok := h.registry.byAddr[addr]
	if !ok {
		return ErrUnknownAddress
	}
	if err := h.eng.Free(addr); err != nil {
		// Registry and engine disagree; surface it rather than guess.
		return fmt.Errorf("heap: engine free: %w", err)
	}
	h.registry.remove(addr)
	h.frees++
	h.liveBytes -= int64(r.size)
	return nil
}

// Close tears the heap down: releases engine state, reports every
// surviving allocation through the log sink (newest first), and returns
// all arenas to the provider. The heap is unusable afterwards; a second
// Close returns ErrHeapClosed.
func (h *Heap) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHeapClosed
	}
	h.closed = true

	h.eng.Release()
	h.reportLeaks()
	return h.releaseArenas()
}

// addrOf returns the address of the first byte of buf.
func addrOf(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}
