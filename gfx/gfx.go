// Package gfx defines the identity and ownership primitives that
// renderers and resource factories share: generational handles, the
// slot pool that issues them, and single-owner and reference-counted
// wrappers over pooled objects.
package gfx

import "errors"

// package errors
var (
	ErrInvalidHandle   = errors.New("stale or unknown handle")
	ErrIndexOutOfRange = errors.New("slot index out of range")
	ErrDisposed        = errors.New("resource already disposed")
)

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release releases memory occupied by the implementing structure.
	Release()
}

// Destroyer releases pooled objects by handle. Ownership wrappers
// delegate destruction to it, one implementation per resource kind.
type Destroyer interface {

	// Destroy releases the object the handle refers to.
	Destroy(Handle) error
}

// Loader describes a resource loader mechanism.
type Loader interface {

	// Load tries to find and load the resource
	// asociated with the provided id.
	Load(id string) ([]byte, error)
}

// Extent3D describes the dimensions of an image resource.
type Extent3D struct {
	Width, Height, Depth uint32
}
