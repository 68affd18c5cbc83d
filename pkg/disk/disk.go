// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disk is the block-level I/O contract shared by the BCB reader and
// the boot image parser, plus a few backends implementing it.
//
// All operations are synchronous. A Disk is exclusively owned by whoever
// opened it until Close is called.
package disk

import (
	"errors"
	"fmt"
	"io"
)

// Disk is an opened, readable block device or image.
type Disk interface {
	io.ReaderAt
	io.Closer

	// Name returns the name the disk was opened with.
	Name() string

	// Size returns the size of the disk in bytes, or -1 if it is unknown.
	Size() int64
}

// Opener opens disks by name.
type Opener interface {
	Open(name string) (Disk, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(name string) (Disk, error)

// Open implements Opener.
func (f OpenerFunc) Open(name string) (Disk, error) {
	return f(name)
}

// ReadHook is notified after each successful read issued through ReadFull.
type ReadHook func(name string, offset int64, length int)

var (
	// ErrOpenFailed is matched by errors returned when a disk cannot be opened.
	ErrOpenFailed = errors.New("cannot open disk")

	// ErrReadFailed is matched by errors returned when a disk read fails.
	ErrReadFailed = errors.New("cannot read disk")
)

// OpenError is returned by the backends of this package when a disk cannot
// be opened.
type OpenError struct {
	Name string
	Err  error
}

func (err *OpenError) Error() string {
	return fmt.Sprintf("cannot open disk %q: %v", err.Name, err.Err)
}

func (err *OpenError) Unwrap() error {
	return err.Err
}

// Is makes errors.Is(err, ErrOpenFailed) hold.
func (err *OpenError) Is(target error) bool {
	return target == ErrOpenFailed
}

// ReadError describes a failed or short read.
type ReadError struct {
	Name   string
	Offset int64
	Length int
	Err    error
}

func (err *ReadError) Error() string {
	return fmt.Sprintf("cannot read %d bytes at %#x from disk %q: %v",
		err.Length, err.Offset, err.Name, err.Err)
}

func (err *ReadError) Unwrap() error {
	return err.Err
}

// Is makes errors.Is(err, ErrReadFailed) hold.
func (err *ReadError) Is(target error) bool {
	return target == ErrReadFailed
}

// ReadFull reads exactly len(p) bytes from d at offset off. A short read is
// an error, wrapping io.ErrUnexpectedEOF. If hook is not nil it is invoked
// once the read succeeded; it never sees reads issued by anybody else.
func ReadFull(d Disk, p []byte, off int64, hook ReadHook) error {
	if off < 0 {
		return &ReadError{Name: d.Name(), Offset: off, Length: len(p), Err: errors.New("negative offset")}
	}
	n, err := d.ReadAt(p, off)
	if n == len(p) {
		err = nil
	}
	if err == nil && n < len(p) {
		err = io.ErrUnexpectedEOF
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return &ReadError{Name: d.Name(), Offset: off, Length: len(p), Err: err}
	}
	if hook != nil {
		hook(d.Name(), off, n)
	}
	return nil
}
