package engine

import "unsafe"

const (
	// blockAlign is the address and size granularity of every block.
	// Pads and remainders are always multiples of it, so no split ever
	// produces a fragment too small to live on a free list.
	blockAlign = 8
)

// block is the out-of-band descriptor for one span of a pool. Free-list
// links are only valid while free; the class field names the list the
// block currently sits on.
type block struct {
	addr uintptr
	size int
	free bool
	pool *pool

	// physical neighbors within the same pool, for coalescing
	prevPhys, nextPhys *block

	// free-list links
	prevFree, nextFree *block
	class              int
}

// pool is one registered backing region.
type pool struct {
	base   uintptr
	size   int
	region []byte
}

// FreeList is the production Engine: segregated free lists with block
// split on allocation and physical-neighbor coalescing on free.
type FreeList struct {
	table *classTable

	// lists has one head per size class plus a trailing large list.
	lists []*block
	pools []*pool

	// live blocks by address
	alloc map[uintptr]*block

	splits    int
	coalesces int
	released  bool
}

var _ Engine = (*FreeList)(nil)

// New creates a FreeList engine. A nil config selects DefaultConfig.
func New(config *Config) *FreeList {
	if config == nil {
		c := DefaultConfig
		config = &c
	}
	table := newClassTable(*config)
	return &FreeList{
		table: table,
		lists: make([]*block, table.numClasses+1),
		alloc: make(map[uintptr]*block, 64),
	}
}

// AddPool registers region as an additional backing pool. The usable
// span is trimmed to blockAlign granularity.
func (fl *FreeList) AddPool(region []byte) error {
	if fl.released {
		return ErrReleased
	}
	if len(region) < blockAlign {
		return ErrBadPool
	}

	base := uintptr(unsafe.Pointer(&region[0]))
	aligned := alignUp(base, blockAlign)
	lead := int(aligned - base)
	usable := (len(region) - lead) &^ (blockAlign - 1)
	if usable < blockAlign {
		return ErrBadPool
	}

	p := &pool{
		base:   aligned,
		size:   usable,
		region: region[lead : lead+usable],
	}
	fl.pools = append(fl.pools, p)
	fl.pushFree(&block{addr: p.base, size: p.size, free: true, pool: p})
	return nil
}

// PoolOverhead returns 0: all bookkeeping is out-of-band, no bytes of a
// registered region are consumed by the engine itself. The method exists
// so callers can size pools for engines that do keep in-region control
// structures.
func (fl *FreeList) PoolOverhead() int {
	return 0
}

// AllocAligned finds the best-fitting free block that can hold size
// bytes at a multiple of align, splitting off leading pad and trailing
// remainder as new free blocks.
func (fl *FreeList) AllocAligned(size, align int) (uintptr, []byte, error) {
	if fl.released {
		return 0, nil, ErrReleased
	}
	if size <= 0 {
		return 0, nil, ErrBadRequest
	}
	if align == 0 {
		align = blockAlign
	}
	if align&(align-1) != 0 {
		return 0, nil, ErrBadRequest
	}
	if align < blockAlign {
		align = blockAlign
	}
	need := (size + blockAlign - 1) &^ (blockAlign - 1)

	for cls := fl.table.classOf(need); cls < len(fl.lists); cls++ {
		var best *block
		bestPad := 0
		for b := fl.lists[cls]; b != nil; b = b.nextFree {
			pad := int(alignUp(b.addr, uintptr(align)) - b.addr)
			if pad+need > b.size {
				continue
			}
			if best == nil || b.size < best.size {
				best, bestPad = b, pad
			}
		}
		if best != nil {
			return fl.carve(best, bestPad, need)
		}
	}
	return 0, nil, ErrNoSpace
}

// carve turns free block b into [pad][allocation][remainder], pushing
// the outer two (when present) back onto the free lists.
func (fl *FreeList) carve(b *block, pad, need int) (uintptr, []byte, error) {
	fl.unlinkFree(b)

	addr := b.addr + uintptr(pad)
	rem := b.size - pad - need
	prev, next := b.prevPhys, b.nextPhys

	allocB := &block{addr: addr, size: need, pool: b.pool}

	if pad > 0 {
		padB := &block{addr: b.addr, size: pad, free: true, pool: b.pool}
		linkPhys(prev, padB)
		prev = padB
		fl.pushFree(padB)
		fl.splits++
	}
	linkPhys(prev, allocB)
	if rem > 0 {
		remB := &block{addr: addr + uintptr(need), size: rem, free: true, pool: b.pool}
		linkPhys(allocB, remB)
		linkPhys(remB, next)
		fl.pushFree(remB)
		fl.splits++
	} else {
		linkPhys(allocB, next)
	}

	fl.alloc[addr] = allocB

	off := int(addr - b.pool.base)
	buf := b.pool.region[off : off+need : off+need]
	return addr, buf, nil
}

// Free reclaims the block at addr, merging it with free physical
// neighbors before returning it to a free list.
func (fl *FreeList) Free(addr uintptr) error {
	if fl.released {
		return ErrReleased
	}
	b, ok := fl.alloc[addr]
	if !ok {
		return ErrBadAddress
	}
	delete(fl.alloc, addr)
	b.free = true

	if n := b.nextPhys; n != nil && n.free {
		fl.unlinkFree(n)
		b.size += n.size
		b.nextPhys = n.nextPhys
		if b.nextPhys != nil {
			b.nextPhys.prevPhys = b
		}
		fl.coalesces++
	}
	if p := b.prevPhys; p != nil && p.free {
		fl.unlinkFree(p)
		p.size += b.size
		p.nextPhys = b.nextPhys
		if p.nextPhys != nil {
			p.nextPhys.prevPhys = p
		}
		b = p
		fl.coalesces++
	}

	fl.pushFree(b)
	return nil
}

// Release drops all engine state. Registered regions are the caller's to
// return to their provider.
func (fl *FreeList) Release() {
	fl.lists, fl.pools, fl.alloc = nil, nil, nil
	fl.released = true
}

// Stats walks the free lists and the live-block index and returns a
// snapshot.
func (fl *FreeList) Stats() Stats {
	s := Stats{
		Pools:     len(fl.pools),
		Splits:    fl.splits,
		Coalesces: fl.coalesces,
	}
	for _, head := range fl.lists {
		for b := head; b != nil; b = b.nextFree {
			s.FreeBlocks++
			s.FreeBytes += int64(b.size)
		}
	}
	for _, b := range fl.alloc {
		s.AllocatedBlocks++
		s.AllocatedBytes += int64(b.size)
	}
	return s
}

func (fl *FreeList) pushFree(b *block) {
	cls := fl.table.classOf(b.size)
	b.class = cls
	b.prevFree = nil
	b.nextFree = fl.lists[cls]
	if b.nextFree != nil {
		b.nextFree.prevFree = b
	}
	fl.lists[cls] = b
}

func (fl *FreeList) unlinkFree(b *block) {
	if b.prevFree != nil {
		b.prevFree.nextFree = b.nextFree
	} else {
		fl.lists[b.class] = b.nextFree
	}
	if b.nextFree != nil {
		b.nextFree.prevFree = b.prevFree
	}
	b.prevFree, b.nextFree = nil, nil
}

// linkPhys chains a after b's position; either side may be nil at the
// pool edge.
func linkPhys(prev, cur *block) {
	if cur != nil {
		cur.prevPhys = prev
	}
	if prev != nil {
		prev.nextPhys = cur
	}
}

func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}
