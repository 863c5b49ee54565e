// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr_test

import (
	"encoding/binary"
	"testing"

	"github.com/devblok/arvo/gfx/vkr"
)

func TestSliceUint32(t *testing.T) {
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}

	words := vkr.SliceUint32(data)
	if len(words) != 3 {
		t.Errorf("expected 3 words, got %d", len(words))
	}
	for idx, word := range words {
		expected := binary.NativeEndian.Uint32(data[idx*4:])
		if word != expected {
			t.Errorf("word %d: expected %#x, got %#x", idx, expected, word)
		}
	}
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		vkr.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 1000)
	for idx := 0; idx < b.N; idx++ {
		vkr.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		vkr.SliceUint32(data)
	}
}
