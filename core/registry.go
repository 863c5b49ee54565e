// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/arvo/gfx"
)

// NewRegistry creates an empty registry for one kind of engine
// object. The kind tag appears in errors and leak reports.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind: kind,
		pool: gfx.NewPool[T](),
	}
}

// Registry tracks engine objects of a single kind behind
// generational handles and makes the underlying pool safe
// for concurrent use. Implements gfx.Destroyer.
type Registry[T any] struct {
	kind string

	mu   sync.Mutex
	pool *gfx.Pool[T]
}

// Kind returns the tag the registry was created with
func (r *Registry[T]) Kind() string {
	return r.kind
}

// Reserve grows the underlying pool to hold at least n objects
func (r *Registry[T]) Reserve(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool.Reserve(n)
}

// Add inserts an object and returns the handle that tracks it
func (r *Registry[T]) Add(obj T) gfx.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool.Create(obj)
}

// Hold inserts an object and scopes it to the returned holder
func (r *Registry[T]) Hold(obj T) gfx.Holder {
	return gfx.NewHolder(r, r.Add(obj))
}

// Share inserts an object and returns a reference counted resource,
// the object is destroyed when the last reference closes
func (r *Registry[T]) Share(obj T) *gfx.Resource {
	return gfx.NewResource(r, r.Add(obj))
}

// Get resolves a handle to the object it tracks
func (r *Registry[T]) Get(handle gfx.Handle) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, err := r.pool.Get(handle)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("registry %s: %w", r.kind, err)
	}
	return obj, nil
}

// Destroy removes the object under the handle and releases it.
// Implements gfx.Destroyer.
func (r *Registry[T]) Destroy(handle gfx.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.pool.Destroy(handle); err != nil {
		return fmt.Errorf("registry %s: %w", r.kind, err)
	}
	log.Debugf("%s destroyed: %s", r.kind, handle)
	return nil
}

// Find returns a handle to the first object the match function
// accepts, NullHandle when nothing matches
func (r *Registry[T]) Find(match func(T) bool) gfx.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool.Find(match)
}

// Each visits every tracked object until the visit function
// returns false. The registry stays locked for the duration,
// the visit function must not call back into it.
func (r *Registry[T]) Each(visit func(gfx.Handle, T) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool.Each(visit)
}

// Len returns the number of objects currently tracked
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool.Len()
}

// DestroyAll removes and releases every tracked object,
// returns how many were destroyed
func (r *Registry[T]) DestroyAll() int {
	r.mu.Lock()
	handles := make([]gfx.Handle, 0, r.pool.Len())
	r.pool.Each(func(h gfx.Handle, _ T) bool {
		handles = append(handles, h)
		return true
	})
	r.mu.Unlock()

	destroyed := 0
	for _, h := range handles {
		if err := r.Destroy(h); err == nil {
			destroyed++
		}
	}
	return destroyed
}
