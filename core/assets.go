// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/arvo/utility/arv"
)

// NewAssetSource wraps an opened archive into a loader the
// engine context pulls assets from
func NewAssetSource(archive *arv.Archive) *AssetSource {
	return &AssetSource{
		archive: archive,
	}
}

// AssetSource reads assets out of an engine archive.
// Implements gfx.Loader.
type AssetSource struct {
	archive *arv.Archive
}

// Load reads the full contents of a named asset
func (s *AssetSource) Load(id string) ([]byte, error) {
	return s.archive.ReadAll(id)
}
