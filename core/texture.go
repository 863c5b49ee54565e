// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"image"
	"io"

	// formats the asset pipeline decodes by default
	_ "image/jpeg"
	_ "image/png"

	"github.com/devblok/arvo/gfx"
)

// NewTexture decodes an image from the reader and rearranges its
// pixels into the layout image uploads expect
func NewTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image.Decode(): %s", err.Error())
	}

	pix, err := GetPixels(img, 0)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Texture{
		pix:    pix,
		width:  uint32(bounds.Dx()),
		height: uint32(bounds.Dy()),
	}, nil
}

// Texture holds decoded pixels ready for upload
type Texture struct {
	pix    []uint8
	width  uint32
	height uint32
}

// Pix returns the raw RGBA pixels
func (t *Texture) Pix() []uint8 {
	return t.pix
}

// Extent returns the image dimensions for image creation
func (t *Texture) Extent() gfx.Extent3D {
	return gfx.Extent3D{
		Width:  t.width,
		Height: t.height,
		Depth:  1,
	}
}
