// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unsafe"
)

// Mesh is a named piece of geometry in the layout the renderer
// consumes, ready for upload into vertex and index buffers.
type Mesh struct {
	Name     string   `json:"name"`
	Vertices []Vertex `json:"vertices"`
	Indices  []uint32 `json:"indices"`
}

// DecodeMesh reads a JSON encoded mesh from r. Every index must refer
// to a vertex that exists.
func DecodeMesh(r io.Reader) (*Mesh, error) {
	var mesh Mesh
	if err := json.NewDecoder(r).Decode(&mesh); err != nil {
		return nil, fmt.Errorf("mesh decode failed: %s", err.Error())
	}
	if len(mesh.Vertices) == 0 {
		return nil, errors.New("mesh has no vertices")
	}
	for _, index := range mesh.Indices {
		if index >= uint32(len(mesh.Vertices)) {
			return nil, fmt.Errorf("mesh index %d refers past the last vertex", index)
		}
	}
	return &mesh, nil
}

// VertexSize returns the byte size of the vertex data, for sizing the
// buffer it will be uploaded into.
func (m *Mesh) VertexSize() uint {
	return uint(len(m.Vertices)) * uint(unsafe.Sizeof(Vertex{}))
}

// IndexSize returns the byte size of the index data.
func (m *Mesh) IndexSize() uint {
	return uint(len(m.Indices)) * uint(unsafe.Sizeof(uint32(0)))
}
