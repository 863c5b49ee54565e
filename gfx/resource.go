// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import "sync/atomic"

// NewResource wraps handle in a reference-counted owner. The creator
// holds the first reference, so the count starts at one.
func NewResource(owner Destroyer, handle Handle) *Resource {
	r := &Resource{owner: owner, handle: handle}
	r.refs.Store(1)
	return r
}

// Resource is the shared-ownership wrapper over a pooled object.
// References are taken with Acquire and returned with Close, the
// reference dropping the count to zero tears the object down through
// the owner capability. The count updates are atomic, several
// goroutines may hold and return references concurrently.
type Resource struct {
	owner  Destroyer
	handle Handle

	refs     atomic.Int32
	released atomic.Bool
}

// Acquire takes an additional reference and returns the receiver for
// chaining. It fails with ErrDisposed once the final teardown has
// happened, the count is never revived from zero.
func (r *Resource) Acquire() (*Resource, error) {
	for {
		cur := r.refs.Load()
		if cur <= 0 {
			return nil, ErrDisposed
		}
		if r.refs.CompareAndSwap(cur, cur+1) {
			return r, nil
		}
	}
}

// Close returns one reference. The caller that drops the count to
// zero runs the teardown, exactly one closer does so even when the
// last references race. Closing an already torn down Resource is a
// no-op.
func (r *Resource) Close() error {
	for {
		cur := r.refs.Load()
		if cur <= 0 {
			return nil
		}
		if r.refs.CompareAndSwap(cur, cur-1) {
			if cur == 1 {
				return r.Reset()
			}
			return nil
		}
	}
}

// Reset tears the object down immediately, regardless of the count,
// and permanently marks the Resource as disposed. Repeated calls are
// no-ops. Final Close delegates here.
func (r *Resource) Reset() error {
	r.refs.Store(0)
	if !r.released.CompareAndSwap(false, true) {
		return nil
	}
	if r.owner == nil || r.handle.Empty() {
		return nil
	}
	return r.owner.Destroy(r.handle)
}

// Handle returns the wrapped handle, NullHandle once torn down.
func (r *Resource) Handle() Handle {
	if r.released.Load() {
		return NullHandle
	}
	return r.handle
}

// Valid reports whether the Resource still owns a live object.
func (r *Resource) Valid() bool {
	return !r.released.Load() && r.owner != nil && r.handle.Valid()
}

// Refs returns the current reference count for diagnostics.
func (r *Resource) Refs() int32 {
	return r.refs.Load()
}
