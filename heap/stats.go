package heap

// Stats is a point-in-time snapshot of heap state.
type Stats struct {
	LiveAllocations int    // registry length
	LiveBytes       int64  // sum of requested sizes still live
	TotalAllocs     uint64 // successful Alloc calls
	TotalFrees      uint64 // successful Free calls
	Arenas          int    // arenas in the chain
	ReservedBytes   int64  // total bytes ever reserved from the provider
	GrowIncrement   int    // configured minimum arena size
}

// Stats returns a consistent snapshot taken under the heap lock.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		LiveAllocations: h.registry.count(),
		LiveBytes:       h.liveBytes,
		TotalAllocs:     h.allocs,
		TotalFrees:      h.frees,
		Arenas:          h.arenaCount,
		ReservedBytes:   h.reserved,
		GrowIncrement:   h.growIncrement,
	}
}
