// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/exp/mmap"

	"github.com/devblok/arvo/utility/arv"
)

var (
	author     = flag.String("author", "", "Set the author of the archive, defaults to the current user")
	version    = flag.Int64("version", 1, "Archive version number to create it with")
	compress   = flag.StringP("compress", "c", "", "Compress the given file/folder")
	extract    = flag.StringP("extract", "e", "", "Extract the named entry")
	extractAll = flag.BoolP("extract-all", "x", false, "Extract every entry")
	list       = flag.BoolP("list", "l", false, "List the contents of the archive")
	dstFile    = flag.StringP("file", "f", "out.arv", "Archive file to create or read")
	outDir     = flag.StringP("out", "o", ".", "Directory extracted entries are written to")
)

func main() {
	var opMade bool
	flag.Parse()

	if *extract != "" && *compress != "" {
		log.Fatal(errors.New("only one operation at a time"))
	}

	if *list {
		opMade = true
		if err := listEntries(); err != nil {
			log.Fatal(err)
		}
	}

	if *extract != "" || *extractAll {
		opMade = true
		if err := extractEntries(); err != nil {
			log.Fatal(err)
		}
	}

	if *compress != "" {
		opMade = true
		if err := compressFiles(); err != nil {
			log.Fatal(err)
		}
	}

	if !opMade {
		flag.PrintDefaults()
	}
}

func archiveAuthor() string {
	if *author != "" {
		return *author
	}
	if u, err := user.Current(); err == nil {
		return u.Name
	}
	return "unknown"
}

func compressFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	var filesToCompress []string
	if err := filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		filesToCompress = append(filesToCompress, path)
		return nil
	}); err != nil {
		return err
	}

	builder, err := arv.NewBuilder(arv.Header{
		Author:      archiveAuthor(),
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})
	if err != nil {
		return err
	}

	for _, ftc := range filesToCompress {
		f, err := os.Open(ftc)
		if err != nil {
			return err
		}
		if err := builder.Add(filepath.ToSlash(ftc), f); err != nil {
			f.Close()
			return err
		}
		f.Close()
	}

	if _, err := builder.WriteTo(dst); err != nil {
		return err
	}

	log.Infof("%s written, %d entries", *dstFile, len(filesToCompress))
	return nil
}

func openArchive() (*arv.Archive, io.Closer, error) {
	r, err := mmap.Open(*dstFile)
	if err != nil {
		return nil, nil, err
	}
	archive, err := arv.Open(r)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return archive, r, nil
}

func listEntries() error {
	archive, closer, err := openArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	header := archive.Header()
	fmt.Printf("%s: version %d, created by %s\n", *dstFile, header.Version, header.Author)
	fmt.Printf("%12s  %12s  %s\n", "size", "compressed", "name")
	for _, entry := range archive.Index() {
		fmt.Printf("%12d  %12d  %s\n", entry.Size, entry.CompressedSize, entry.Name)
	}
	return nil
}

func extractEntries() error {
	archive, closer, err := openArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	var names []string
	if *extractAll {
		for _, entry := range archive.Index() {
			names = append(names, entry.Name)
		}
	} else {
		names = append(names, *extract)
	}

	for _, name := range names {
		if err := extractEntry(archive, name); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(archive *arv.Archive, name string) error {
	src, err := archive.Open(name)
	if err != nil {
		return err
	}

	path := filepath.Join(*outDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	log.Infof("extracted %s", path)
	return nil
}
