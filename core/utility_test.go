// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/devblok/arvo/core"
)

var testImage image.Image

func init() {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		panic(err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		panic(err)
	}
	testImage = img
}

func encodeTestPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestGetPixels(t *testing.T) {
	pix, err := core.GetPixels(testImage, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != 64*48*4 {
		t.Fatalf("expected %d bytes, got %d", 64*48*4, len(pix))
	}

	offset := 5*64*4 + 10*4
	if pix[offset] != 10 || pix[offset+1] != 5 || pix[offset+2] != 15 || pix[offset+3] != 255 {
		t.Errorf("unexpected pixel at (10,5): %v", pix[offset:offset+4])
	}
}

func TestGetPixelsRowPitch(t *testing.T) {
	pix, err := core.GetPixels(testImage, 512)
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != 512*48 {
		t.Fatalf("expected %d bytes, got %d", 512*48, len(pix))
	}

	offset := 5*512 + 10*4
	if pix[offset] != 10 || pix[offset+1] != 5 || pix[offset+2] != 15 || pix[offset+3] != 255 {
		t.Errorf("unexpected pixel at (10,5): %v", pix[offset:offset+4])
	}
}

func TestGetPixelsTooSmallRowPitch(t *testing.T) {
	pix, err := core.GetPixels(testImage, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != 64*48*4 {
		t.Errorf("row pitch below natural stride should be ignored, got %d bytes", len(pix))
	}
}

func BenchmarkGetPixelsNoRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 0)
	}
}

func BenchmarkGetPixelsSmallRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 4)
	}
}

func BenchmarkGetPixelsMediumRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 200)
	}
}

func BenchmarkGetPixelsBigRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 1000)
	}
}
