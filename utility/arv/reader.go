// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package arv

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
)

// Open opens the arv archive from r. It will also check
// if the file is actually an arv archive, will return an error
// when file incorrect.
func Open(r io.ReaderAt) (*Archive, error) {
	ar := Archive{
		reader:  r,
		entries: make(map[string]IndexEntry),
	}

	head := make([]byte, MagicLength)
	if num, err := r.ReadAt(head, 0); err != nil {
		return nil, err
	} else if num < MagicLength || !bytes.Equal(head, magic[:]) {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); err != nil {
		return nil, err
	} else if num < HeaderSizeNumberLength {
		return nil, ErrFileFormat
	}

	headerSize, err := binaryToint64(headerSizeBytes)
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	if err := gobDecode(&ar.header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	ar.payloadBase = MagicLength + HeaderSizeNumberLength + headerSize
	for _, entry := range ar.header.Index {
		ar.entries[entry.Name] = entry
	}

	return &ar, nil
}

// Archive provides concurrent io for an arv file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader      io.ReaderAt
	header      Header
	payloadBase int64
	entries     map[string]IndexEntry
}

// Header returns the decoded archive header.
func (a *Archive) Header() Header {
	return a.header
}

// Index returns a copy of the archive file index.
func (a *Archive) Index() []IndexEntry {
	return append([]IndexEntry(nil), a.header.Index...)
}

// ReadAll returns the entire contents of a file with a given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	entry, ok := a.entries[name]
	if !ok {
		return nil, ErrNoEntry
	}

	reader, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	contents := make([]byte, entry.Size)
	if _, err := io.ReadFull(reader, contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// Open returns a Reader for a file in the Archive. Every Reader works
// on its own section of the archive, so readers for different files
// can be used concurrently.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.entries[name]
	if !ok {
		return nil, ErrNoEntry
	}
	section := io.NewSectionReader(a.reader, a.payloadBase+entry.Offset, entry.CompressedSize)
	return &Reader{
		name: entry.Name,
		size: entry.Size,
		dec:  lz4.NewReader(section),
	}, nil
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
type Reader struct {
	name string
	size int64
	dec  *lz4.Reader
}

// Read reads already decompressed data.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.dec.Read(p)
}

// Name returns the name the file was archived under.
func (r *Reader) Name() string {
	return r.name
}

// Size returns the decompressed size of the file.
func (r *Reader) Size() int64 {
	return r.size
}
