// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bootimg

import (
	"errors"
	"io"
	"math"
	"os"

	droidbytes "github.com/linuxboot/droidboot/pkg/bytes"
	"github.com/linuxboot/droidboot/pkg/check"
	"github.com/linuxboot/droidboot/pkg/disk"
)

// Names of the views.
const (
	KernelName  = "kernel"
	RamdiskName = "ramdisk"
)

// View is a read-only stream over one part of a boot image. It borrows the
// disk: closing a View never closes the disk, and the disk must stay open
// while the View is used.
//
// A View is not safe for concurrent use.
type View struct {
	name   string
	d      disk.Disk
	r      droidbytes.Range
	pos    uint64
	closed bool

	// ReadHook, if set, is passed to the disk reads issued by this view,
	// and only to them.
	ReadHook disk.ReadHook
}

var (
	_ io.ReadSeekCloser = (*View)(nil)
	_ io.ReaderAt       = (*View)(nil)
)

// NewView returns a View of range r of d. The range must fit in the disk;
// for disks of unknown size it only has to be addressable.
func NewView(name string, d disk.Disk, r droidbytes.Range) (*View, error) {
	size := uint64(math.MaxInt64)
	if s := d.Size(); s >= 0 {
		size = uint64(s)
	}
	if err := check.Within(r, size); err != nil {
		return nil, &BoundsError{Device: d.Name(), Part: name, Range: r, Err: err}
	}
	return &View{name: name, d: d, r: r}, nil
}

// Name returns "kernel" or "ramdisk".
func (v *View) Name() string { return v.name }

// Offset returns the offset of the part on the disk.
func (v *View) Offset() uint64 { return v.r.Offset }

// Size returns the declared size of the part.
func (v *View) Size() int64 { return int64(v.r.Length) }

// Range returns the byte range of the part on the disk.
func (v *View) Range() droidbytes.Range { return v.r }

// Device returns the borrowed disk.
func (v *View) Device() disk.Disk { return v.d }

func (v *View) remaining(pos uint64) uint64 {
	if pos >= v.r.Length {
		return 0
	}
	return v.r.Length - pos
}

// Read reads up to len(p) bytes, never past the end of the part. At the end
// of the part it returns 0, io.EOF.
func (v *View) Read(p []byte) (int, error) {
	if v.closed {
		return 0, os.ErrClosed
	}
	left := v.remaining(v.pos)
	if left == 0 {
		return 0, io.EOF
	}
	if uint64(len(p)) > left {
		p = p[:left]
	}
	if err := disk.ReadFull(v.d, p, int64(v.r.Offset+v.pos), v.ReadHook); err != nil {
		return 0, err
	}
	v.pos += uint64(len(p))
	return len(p), nil
}

// ReadAt implements io.ReaderAt relative to the start of the part.
func (v *View) ReadAt(p []byte, off int64) (int, error) {
	if v.closed {
		return 0, os.ErrClosed
	}
	if off < 0 {
		return 0, errors.New("bootimg: negative offset")
	}
	left := v.remaining(uint64(off))
	if left == 0 {
		return 0, io.EOF
	}
	var eof error
	if uint64(len(p)) > left {
		p = p[:left]
		eof = io.EOF
	}
	if err := disk.ReadFull(v.d, p, int64(v.r.Offset+uint64(off)), v.ReadHook); err != nil {
		return 0, err
	}
	return len(p), eof
}

// Seek implements io.Seeker. Seeking past the end is allowed; reads there
// return io.EOF.
func (v *View) Seek(offset int64, whence int) (int64, error) {
	if v.closed {
		return 0, os.ErrClosed
	}
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(v.pos)
	case io.SeekEnd:
		base = int64(v.r.Length)
	default:
		return 0, errors.New("bootimg: invalid whence")
	}
	pos := base + offset
	if pos < 0 {
		return 0, errors.New("bootimg: negative position")
	}
	v.pos = uint64(pos)
	return pos, nil
}

// Close releases the view. The disk stays open.
func (v *View) Close() error {
	if v.closed {
		return os.ErrClosed
	}
	v.closed = true
	v.d = nil
	return nil
}
