// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// NewHolder wraps handle together with the owner that knows how to
// destroy it. The Holder takes ownership without any counting, at most
// one live Holder should exist per handle.
func NewHolder(owner Destroyer, handle Handle) Holder {
	return Holder{owner: owner, handle: handle}
}

// Holder is the single-owner wrapper over a pooled object. The zero
// value is a legal empty Holder. Destruction is delegated to the owner
// capability, the Holder itself does not know how objects are released.
type Holder struct {
	owner  Destroyer
	handle Handle
	closed bool
}

// Handle returns the wrapped handle for call sites that only need
// identity, not ownership.
func (h *Holder) Handle() Handle {
	return h.handle
}

// Valid reports whether the Holder currently owns an object.
func (h *Holder) Valid() bool {
	return h.handle.Valid()
}

// Empty reports whether the Holder is in its empty state.
func (h *Holder) Empty() bool {
	return !h.Valid()
}

// Reset destroys the owned object through the owner capability and
// clears the Holder to its empty state. Resetting an empty Holder is
// a no-op, so repeated calls are safe.
func (h *Holder) Reset() error {
	if h.owner == nil || h.handle.Empty() {
		h.owner = nil
		h.handle = NullHandle
		return nil
	}
	err := h.owner.Destroy(h.handle)
	h.owner = nil
	h.handle = NullHandle
	return err
}

// Close resets the Holder exactly once, later calls do nothing. It
// guarantees release on every exit path when deferred.
func (h *Holder) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.Reset()
}
