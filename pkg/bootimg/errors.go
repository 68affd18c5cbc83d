// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bootimg

import (
	"errors"
	"fmt"

	droidbytes "github.com/linuxboot/droidboot/pkg/bytes"
)

var (
	// ErrNotABootImage is matched by errors for disks without a valid header.
	ErrNotABootImage = errors.New("not an android bootimg")

	// ErrRamdiskNotFound is matched by errors for valid images without a
	// ramdisk.
	ErrRamdiskNotFound = errors.New("no ramdisk")

	// ErrOutOfBounds is matched by errors for parts not fitting in the disk.
	ErrOutOfBounds = errors.New("sub-image is out of bounds")

	// ErrShortBuffer is returned when the cmdline buffer given to
	// LoadKernel cannot hold CmdlineSize bytes.
	ErrShortBuffer = errors.New("cmdline buffer is shorter than CmdlineSize")
)

// NotABootImageError means the disk could not be read or does not carry a
// valid boot image header.
type NotABootImageError struct {
	Device string
	// Reason of the rejection, if the header was read.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

func (err *NotABootImageError) Error() string {
	s := ErrNotABootImage.Error()
	if err.Device != "" {
		s = err.Device + " " + s
	}
	switch {
	case err.Err != nil:
		return s + ": " + err.Err.Error()
	case err.Reason != "":
		return s + ": " + err.Reason
	}
	return s
}

func (err *NotABootImageError) Unwrap() error {
	return err.Err
}

// Is makes errors.Is(err, ErrNotABootImage) hold.
func (err *NotABootImageError) Is(target error) bool {
	return target == ErrNotABootImage
}

// RamdiskNotFoundError means the header is valid but declares no ramdisk.
type RamdiskNotFoundError struct {
	Device string
}

func (err *RamdiskNotFoundError) Error() string {
	return fmt.Sprintf("no ramdisk in %q", err.Device)
}

// Is makes errors.Is(err, ErrRamdiskNotFound) hold.
func (err *RamdiskNotFoundError) Is(target error) bool {
	return target == ErrRamdiskNotFound
}

// BoundsError means a part of the image does not fit in its disk.
type BoundsError struct {
	Device string
	Part   string
	Range  droidbytes.Range
	Err    error
}

func (err *BoundsError) Error() string {
	return fmt.Sprintf("%s of %s at %s: %v", err.Part, err.Device, err.Range, err.Err)
}

func (err *BoundsError) Unwrap() error {
	return err.Err
}

// Is makes errors.Is(err, ErrOutOfBounds) hold.
func (err *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
