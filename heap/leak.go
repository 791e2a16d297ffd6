package heap

// reportLeaks emits one diagnostic per surviving allocation, newest
// allocation first. Frames are printed innermost call first, indexed
// down to 0 at the outermost captured frame. Caller holds h.mu.
func (h *Heap) reportLeaks() int {
	leaks := 0
	h.registry.walk(func(r *record) {
		leaks++
		h.logf(LevelWarning,
			"Memory leak of size %d bytes at address 0x%x with callstack:",
			r.size, r.addr)
		for i, pc := range r.trace {
			h.logf(LevelWarning, "[%d] %s", len(r.trace)-i-1, h.symbolize(pc))
		}
	})
	return leaks
}
