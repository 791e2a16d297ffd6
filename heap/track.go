package heap

// record describes one live allocation: where it lives, how much was
// asked for, and the call path that asked.
type record struct {
	addr  uintptr
	size  int
	trace []uintptr

	prev, next *record
}

// tracker is the registry of live allocations. Records sit on an
// intrusive doubly-linked list in LIFO order (newest at the head) with
// an address index for O(1) removal; the list order is what the leak
// report walks, so it must stay most-recent-first.
type tracker struct {
	head   *record
	byAddr map[uintptr]*record
}

func newTracker() *tracker {
	return &tracker{byAddr: make(map[uintptr]*record, 64)}
}

// record pushes a new allocation at the head of the registry.
func (tk *tracker) record(addr uintptr, size int, trace []uintptr) {
	r := &record{addr: addr, size: size, trace: trace, next: tk.head}
	if tk.head != nil {
		tk.head.prev = r
	}
	tk.head = r
	tk.byAddr[addr] = r
}

// remove unlinks the record for addr. Returns false when no record
// matches.
func (tk *tracker) remove(addr uintptr) bool {
	r, ok := tk.byAddr[addr]
	if !ok {
		return false
	}
	delete(tk.byAddr, addr)
	if r.prev != nil {
		r.prev.next = r.next
	} else {
		tk.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	}
	r.prev, r.next = nil, nil
	return true
}

// walk visits every live record, newest allocation first.
func (tk *tracker) walk(fn func(*record)) {
	for r := tk.head; r != nil; r = r.next {
		fn(r)
	}
}

func (tk *tracker) count() int {
	return len(tk.byAddr)
}
