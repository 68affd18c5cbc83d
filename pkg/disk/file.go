// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disk

import (
	"io"
	"os"
	"path/filepath"
)

// FileOpener opens regular files or block device nodes. Relative names are
// resolved against Root when it is set.
type FileOpener struct {
	Root string
}

func (o FileOpener) path(name string) string {
	if o.Root != "" && !filepath.IsAbs(name) {
		return filepath.Join(o.Root, name)
	}
	return name
}

// Open implements Opener.
func (o FileOpener) Open(name string) (Disk, error) {
	f, err := os.Open(o.path(name))
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}
	return &fileDisk{name: name, f: f, size: fileSize(f)}, nil
}

type statSeeker interface {
	Stat() (os.FileInfo, error)
	Seek(offset int64, whence int) (int64, error)
}

// fileSize returns the size of a regular file or block device, or -1.
func fileSize(f statSeeker) int64 {
	fi, err := f.Stat()
	if err != nil {
		return -1
	}
	if fi.Mode().IsRegular() {
		return fi.Size()
	}
	// Block devices report a zero Stat size but can be seeked to their end.
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return -1
	}
	return end
}

type fileDisk struct {
	name string
	f    *os.File
	size int64
}

func (d *fileDisk) Name() string { return d.name }

func (d *fileDisk) Size() int64 { return d.size }

func (d *fileDisk) ReadAt(p []byte, off int64) (int, error) {
	return d.f.ReadAt(p, off)
}

func (d *fileDisk) Close() error {
	return d.f.Close()
}
