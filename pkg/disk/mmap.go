// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disk

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MmapOpener opens files or block devices by mapping them read-only into
// memory.
type MmapOpener struct {
	Root string
}

// Open implements Opener.
func (o MmapOpener) Open(name string) (Disk, error) {
	f, err := os.Open(FileOpener{Root: o.Root}.path(name))
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}
	defer f.Close()
	return mapFile(name, f, fileSize(f))
}

// mapFile maps the first size bytes of f. The mapping outlives f.
func mapFile(name string, f *os.File, size int64) (Disk, error) {
	switch {
	case size < 0:
		return nil, &OpenError{Name: name, Err: errors.New("size is unknown, cannot map")}
	case size == 0:
		// Zero-length mappings are rejected by the kernel.
		return &memDisk{name: name}, nil
	case uint64(size) > uint64(math.MaxInt):
		return nil, &OpenError{Name: name, Err: fmt.Errorf("%d bytes do not fit in the address space", size)}
	}

	m, err := mmap.MapRegion(f, int(size), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}
	return &mmapDisk{name: name, m: m}, nil
}

type mmapDisk struct {
	name string
	m    mmap.MMap
}

func (d *mmapDisk) Name() string { return d.name }

func (d *mmapDisk) Size() int64 { return int64(len(d.m)) }

func (d *mmapDisk) ReadAt(p []byte, off int64) (int, error) {
	if d.m == nil {
		return 0, os.ErrClosed
	}
	return readAt(d.m, p, off)
}

func (d *mmapDisk) Close() error {
	if d.m == nil {
		return os.ErrClosed
	}
	err := d.m.Unmap()
	d.m = nil
	return err
}

func readAt(b []byte, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
