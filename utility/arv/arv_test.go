// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package arv_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devblok/arvo/utility/arv"
	"golang.org/x/exp/mmap"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildTestArchive(t *testing.T) *bytes.Buffer {
	t.Helper()

	builder, err := arv.NewBuilder(arv.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test", bytes.NewReader([]byte(testString1))); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test2", bytes.NewReader([]byte(testString2))); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf
}

func readFileAndCompare(f *arv.Reader, expected string, t *testing.T) error {
	result := make([]byte, len(expected))
	n, err := f.Read(result)
	if err != nil {
		t.Error(err)
	}
	if n < len(expected) {
		return errors.New("incorrect number of bytes read")
	}

	if strings.Compare(string(result), expected) != 0 {
		return errors.New("test string does not match up")
	}

	return nil
}

func TestCreateAndRead(t *testing.T) {
	buf := buildTestArchive(t)

	ar, err := arv.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "test" {
		t.Errorf("reader carries the wrong name: %s", f.Name())
	}
	if f.Size() != int64(len(testString1)) {
		t.Errorf("expected size %d, got %d", len(testString1), f.Size())
	}
	if err := readFileAndCompare(f, testString1, t); err != nil {
		t.Error(err)
	}

	if f, err := ar.Open("test2"); err != nil {
		t.Error(err)
	} else if err := readFileAndCompare(f, testString2, t); err != nil {
		t.Error(err)
	}
}

func TestCreateAndReadAll(t *testing.T) {
	buf := buildTestArchive(t)

	ar, err := arv.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if ar.Header().Author != "devblok" {
		t.Errorf("header author did not survive: %s", ar.Header().Author)
	}
	if ar.Header().Version != 1 {
		t.Errorf("header version did not survive: %d", ar.Header().Version)
	}

	f, err := ar.ReadAll("test")
	if err != nil {
		t.Error(err)
	}
	if strings.Compare(string(f), testString1) != 0 {
		t.Error("test string does not match up")
	}

	if f, err := ar.ReadAll("test2"); err != nil {
		t.Error(err)
	} else if strings.Compare(string(f), testString2) != 0 {
		t.Error("test string does not match up")
	}
}

func TestOpenmmap(t *testing.T) {
	buf := buildTestArchive(t)

	path := filepath.Join(t.TempDir(), "opentest.arv")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := mmap.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ar, err := arv.Open(r)
	if err != nil {
		t.Fatal(err)
	}

	if f, err := ar.ReadAll("test"); err != nil {
		t.Error(err)
	} else if strings.Compare(string(f), testString1) != 0 {
		t.Error("result is not expected value")
	}

	if f, err := ar.ReadAll("test2"); err != nil {
		t.Error(err)
	} else if strings.Compare(string(f), testString2) != 0 {
		t.Error("result is not expected value")
	}
}

func TestOpenGarbage(t *testing.T) {
	garbage := bytes.NewReader([]byte("this is not an archive of any kind whatsoever"))
	if _, err := arv.Open(garbage); !errors.Is(err, arv.ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestMissingEntry(t *testing.T) {
	buf := buildTestArchive(t)

	ar, err := arv.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ar.Open("missing"); !errors.Is(err, arv.ErrNoEntry) {
		t.Errorf("expected ErrNoEntry from Open, got %v", err)
	}
	if _, err := ar.ReadAll("missing"); !errors.Is(err, arv.ErrNoEntry) {
		t.Errorf("expected ErrNoEntry from ReadAll, got %v", err)
	}
}

func TestBigEntry(t *testing.T) {
	payload := make([]byte, 128*1024)
	for idx := range payload {
		payload[idx] = byte(idx * 31)
	}

	builder, err := arv.NewBuilder(arv.Header{Author: "devblok", Version: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("big", bytes.NewReader(payload)); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	}

	ar, err := arv.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	contents, err := ar.ReadAll("big")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(contents, payload) {
		t.Error("big entry came back different")
	}
}
