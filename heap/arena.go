package heap

import (
	"errors"
	"fmt"

	"github.com/heapkit/heapkit/heap/engine"
	"github.com/heapkit/heapkit/internal/safemath"
)

// arena is one committed region registered as an engine pool. Arenas
// form a singly-linked chain, newest first, and are only released en
// masse at Close.
type arena struct {
	region []byte
	next   *arena
}

// ensureCapacity allocates from the engine, growing the arena chain
// once when every existing pool is exhausted. Caller holds h.mu.
func (h *Heap) ensureCapacity(size, align int) (uintptr, []byte, error) {
	addr, buf, err := h.eng.AllocAligned(size, align)
	if err == nil {
		return addr, buf, nil
	}
	if !errors.Is(err, engine.ErrNoSpace) {
		return 0, nil, fmt.Errorf("heap: engine alloc: %w", err)
	}

	if err := h.grow(size, align); err != nil {
		return 0, nil, err
	}

	// The new arena was sized for this request; a second miss means the
	// engine is broken, not the sizing.
	addr, buf, err = h.eng.AllocAligned(size, align)
	if err != nil {
		return 0, nil, fmt.Errorf("heap: alloc after grow: %w", err)
	}
	return addr, buf, nil
}

// grow reserves a new arena big enough for a pending (size, align)
// request, registers it with the engine, and links it at the chain
// head. Caller holds h.mu.
func (h *Heap) grow(size, align int) error {
	// Double the triggering request so the retry is guaranteed to fit
	// even after alignment pad; a request too big to double can never
	// be satisfied.
	need, ok := safemath.Mul(size, 2)
	if ok {
		need, ok = safemath.Add(need, align)
	}
	if ok {
		need, ok = safemath.Add(need, h.eng.PoolOverhead())
	}
	if !ok {
		h.logf(LevelError, "OUT OF MEMORY! request of %d bytes overflows arena sizing", size)
		return ErrOutOfMemory
	}
	arenaSize := h.growIncrement + h.eng.PoolOverhead()
	if need > arenaSize {
		arenaSize = need
	}

	region, err := h.prov.Reserve(arenaSize)
	if err != nil {
		h.logf(LevelError, "OUT OF MEMORY! reserving %d bytes: %v", arenaSize, err)
		return ErrOutOfMemory
	}
	if err := h.eng.AddPool(region); err != nil {
		// Unusable region; hand it straight back.
		if rerr := h.prov.Release(region); rerr != nil {
			h.logf(LevelError, "releasing rejected arena: %v", rerr)
		}
		return fmt.Errorf("heap: register arena: %w", err)
	}

	h.arenas = &arena{region: region, next: h.arenas}
	h.arenaCount++
	h.reserved += int64(len(region))
	return nil
}

// releaseArenas returns every arena region to the provider. Caller
// holds h.mu. Returns the first release failure, if any.
func (h *Heap) releaseArenas() error {
	var firstErr error
	for a := h.arenas; a != nil; a = a.next {
		if err := h.prov.Release(a.region); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	h.arenas = nil
	h.arenaCount = 0
	return firstErr
}
