// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"sync/atomic"
	"testing"

	"github.com/devblok/arvo/gfx"
)

// countingOwner forwards destruction into a pool and counts the calls,
// so tests can assert teardown happened exactly once.
type countingOwner struct {
	pool     *gfx.Pool[string]
	destroys atomic.Int32
}

func (o *countingOwner) Destroy(h gfx.Handle) error {
	o.destroys.Add(1)
	return o.pool.Destroy(h)
}

func TestHolderLifecycle(t *testing.T) {
	pool := gfx.NewPool[string]()
	owner := &countingOwner{pool: pool}

	holder := gfx.NewHolder(owner, pool.Create("mesh"))
	if !holder.Valid() {
		t.Error("holder over a live handle is not valid")
	}

	if err := holder.Reset(); err != nil {
		t.Error(err)
	}
	if owner.destroys.Load() != 1 {
		t.Errorf("expected one destroy, got %d", owner.destroys.Load())
	}
	if pool.Len() != 0 {
		t.Errorf("object still live after reset, count %d", pool.Len())
	}
	if !holder.Empty() {
		t.Error("holder is not empty after reset")
	}

	// repeated resets stay no-ops
	if err := holder.Reset(); err != nil {
		t.Error(err)
	}
	if owner.destroys.Load() != 1 {
		t.Errorf("reset ran the destroy again, count %d", owner.destroys.Load())
	}
}

func TestHolderZeroValue(t *testing.T) {
	var holder gfx.Holder
	if !holder.Empty() {
		t.Error("zero value holder is not empty")
	}
	if err := holder.Reset(); err != nil {
		t.Error(err)
	}
	if err := holder.Close(); err != nil {
		t.Error(err)
	}
}

func TestHolderCloseOnce(t *testing.T) {
	pool := gfx.NewPool[string]()
	owner := &countingOwner{pool: pool}

	holder := gfx.NewHolder(owner, pool.Create("texture"))
	if err := holder.Close(); err != nil {
		t.Error(err)
	}
	if err := holder.Close(); err != nil {
		t.Error(err)
	}
	if owner.destroys.Load() != 1 {
		t.Errorf("expected one destroy across repeated closes, got %d", owner.destroys.Load())
	}
	if holder.Valid() {
		t.Error("holder still valid after close")
	}
}

func TestHolderHandle(t *testing.T) {
	pool := gfx.NewPool[string]()
	owner := &countingOwner{pool: pool}

	h := pool.Create("shader")
	holder := gfx.NewHolder(owner, h)
	if holder.Handle() != h {
		t.Error("holder does not expose the wrapped handle")
	}

	holder.Reset()
	if holder.Handle() != gfx.NullHandle {
		t.Error("reset holder still exposes the old handle")
	}
}
