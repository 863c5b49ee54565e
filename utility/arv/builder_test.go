// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package arv

import (
	"bytes"
	"testing"
	"time"
)

func TestAddAndWrite(t *testing.T) {
	builder, err := NewBuilder(Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err != nil {
		t.Error(err)
	}

	builder.Add("test", bytes.NewReader([]byte("idunvovkjnreovmegihjbrqlkmfrjnb")))
	builder.Add("test2", bytes.NewReader([]byte("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb")))

	if len(builder.files) != 2 {
		t.Error("incorrect number of files present")
	}

	buf := bytes.NewBuffer([]byte{})
	num, err := builder.WriteTo(buf)
	if err != nil {
		t.Error(err)
	}
	if num == 0 {
		t.Error("nothing was written out")
	}
	if int64(buf.Len()) != num {
		t.Errorf("reported %d written, buffer has %d", num, buf.Len())
	}

	// the builder starts a fresh archive after writing out
	if len(builder.files) != 0 {
		t.Error("files remain in the builder after WriteTo")
	}
}

func TestWriteOffsets(t *testing.T) {
	builder, err := NewBuilder(Header{Author: "devblok", Version: 1})
	if err != nil {
		t.Error(err)
	}

	builder.Add("first", bytes.NewReader([]byte("some contents to compress")))
	builder.Add("second", bytes.NewReader([]byte("other contents following them")))

	first := builder.files[0]
	second := builder.files[1]

	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		t.Error(err)
	}

	ar, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	index := ar.Index()
	if len(index) != 2 {
		t.Fatalf("expected 2 index entries, got %d", len(index))
	}
	if index[0].Offset != 0 {
		t.Errorf("first entry starts at %d", index[0].Offset)
	}
	if index[1].Offset != first.Compressed {
		t.Errorf("second entry starts at %d, expected %d", index[1].Offset, first.Compressed)
	}
	if index[1].CompressedSize != second.Compressed {
		t.Errorf("second entry compressed size %d, expected %d", index[1].CompressedSize, second.Compressed)
	}
}
