// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// noSlot terminates the free list and marks slots that are not on it.
const noSlot = ^uint32(0)

// initialGeneration is the stamp freshly appended slots are born with.
const initialGeneration = 1

type slot[T any] struct {
	object     T
	generation uint32
	nextFree   uint32
	live       bool
}

// NewPool creates an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		freeHead:   noSlot,
		generation: initialGeneration,
	}
}

// Pool is a growable slot arena that stores objects behind generational
// handles. Freed slots are kept on an intrusive free list embedded in
// the slot array and reused by later creates; every release stamps the
// slot from a pool-wide counter, so a reused index never resolves for a
// handle issued before the release.
//
// A Pool is not safe for concurrent use. The context owning a resource
// kind is expected to serialize all calls into its pool.
type Pool[T any] struct {
	slots    []slot[T]
	freeHead uint32
	count    int

	// generation is this pool's stamp counter. It advances on every
	// release and is never shared between pool instances.
	generation uint32
}

// Reserve grows the backing array capacity to hold at least n slots
// without further allocation. It never shrinks.
func (p *Pool[T]) Reserve(n int) {
	if n <= cap(p.slots) {
		return
	}
	slots := make([]slot[T], len(p.slots), n)
	copy(slots, p.slots)
	p.slots = slots
}

// Create stores obj in a free slot and returns the handle for it.
// The head of the free list is reused when available, keeping the
// stamp it received on release. Otherwise a new slot is appended.
func (p *Pool[T]) Create(obj T) Handle {
	var idx uint32
	if p.freeHead != noSlot {
		idx = p.freeHead
		s := &p.slots[idx]
		p.freeHead = s.nextFree
		s.nextFree = noSlot
		s.object = obj
		s.live = true
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot[T]{
			object:     obj,
			generation: initialGeneration,
			nextFree:   noSlot,
			live:       true,
		})
	}
	p.count++
	return Handle{index: idx, generation: p.slots[idx].generation}
}

// Destroy releases the object h refers to and recycles its slot.
// Destroying NullHandle is a no-op. A stale or unknown handle fails
// with ErrInvalidHandle before any state is touched. When the stored
// object implements Releasable it is released before the slot is
// recycled.
func (p *Pool[T]) Destroy(h Handle) error {
	if h.Empty() {
		return nil
	}
	s, err := p.lookup(h)
	if err != nil {
		return err
	}

	if rel, ok := any(s.object).(Releasable); ok {
		rel.Release()
	}

	var zero T
	s.object = zero
	s.live = false

	p.generation++
	s.generation = p.generation

	s.nextFree = p.freeHead
	p.freeHead = h.index
	p.count--
	return nil
}

// Drop destroys the object h refers to and clears the caller's handle
// to NullHandle. The handle is cleared even when the pool rejects it,
// so a dropped handle can never be used twice.
func (p *Pool[T]) Drop(h *Handle) error {
	err := p.Destroy(*h)
	*h = NullHandle
	return err
}

// Get returns the object h refers to. It fails with ErrInvalidHandle
// when the handle is null, stale or out of range.
func (p *Pool[T]) Get(h Handle) (T, error) {
	s, err := p.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.object, nil
}

// HandleAt returns the handle currently associated with the slot at
// index, failing with ErrIndexOutOfRange outside [0, Cap()). It does
// not check that the slot is live. A freed slot yields the stamp it
// received on release, which no longer resolves through Get.
func (p *Pool[T]) HandleAt(index int) (Handle, error) {
	if index < 0 || index >= len(p.slots) {
		return NullHandle, ErrIndexOutOfRange
	}
	return Handle{index: uint32(index), generation: p.slots[index].generation}, nil
}

// Find returns the handle of the first live object match reports true
// for, or NullHandle when there is none. The scan is linear over all
// slots and meant for debugging and rare lookups, not hot paths.
func (p *Pool[T]) Find(match func(T) bool) Handle {
	for idx := range p.slots {
		s := &p.slots[idx]
		if s.live && match(s.object) {
			return Handle{index: uint32(idx), generation: s.generation}
		}
	}
	return NullHandle
}

// Clear drops every slot without invoking Release on live objects and
// resets the free list and count. The stamp counter is preserved.
// Handles issued before Clear must be discarded by the caller, the
// pool cannot reject them reliably once slot positions are reissued.
func (p *Pool[T]) Clear() {
	p.slots = p.slots[:0]
	p.freeHead = noSlot
	p.count = 0
}

// Len returns the number of live objects.
func (p *Pool[T]) Len() int {
	return p.count
}

// Cap returns the total number of slots, live and free. Together with
// HandleAt it allows walking every slot position for diagnostics.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// Each calls fn for every live object until fn returns false.
// The pool must not be mutated during the walk.
func (p *Pool[T]) Each(fn func(Handle, T) bool) {
	for idx := range p.slots {
		s := &p.slots[idx]
		if !s.live {
			continue
		}
		if !fn(Handle{index: uint32(idx), generation: s.generation}, s.object) {
			return
		}
	}
}

func (p *Pool[T]) lookup(h Handle) (*slot[T], error) {
	if h.Empty() || h.index >= uint32(len(p.slots)) {
		return nil, ErrInvalidHandle
	}
	s := &p.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, ErrInvalidHandle
	}
	return s, nil
}
