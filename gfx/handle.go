// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import "fmt"

// NullHandle is the zero Handle. It refers to no object and is the
// only handle with generation zero.
var NullHandle Handle

// Handle identifies an object resident in a Pool. It pairs the slot
// index with the generation stamp the slot carried when the object
// was created, so recycling a slot invalidates every handle issued
// for its previous occupants. Handles are plain values, freely
// copyable and comparable, and carry no ownership by themselves.
type Handle struct {
	index      uint32
	generation uint32
}

// Index returns the slot position the handle refers to.
func (h Handle) Index() uint32 {
	return h.index
}

// Generation returns the stamp the handle was issued with.
func (h Handle) Generation() uint32 {
	return h.generation
}

// Valid reports whether the handle was issued by a pool. A valid
// handle may still be rejected by the pool once its slot is recycled.
func (h Handle) Valid() bool {
	return h.generation != 0
}

// Empty reports whether the handle is null.
func (h Handle) Empty() bool {
	return h.generation == 0
}

// Opaque returns a pointer-sized projection of the handle for native
// interop boundaries. It is an identity token, never an address.
func (h Handle) Opaque() uintptr {
	return uintptr(h.index)
}

// String implements fmt.Stringer for log output.
func (h Handle) String() string {
	if h.Empty() {
		return "handle(null)"
	}
	return fmt.Sprintf("handle(%d:%d)", h.index, h.generation)
}
