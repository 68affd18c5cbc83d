// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bootimg

import (
	"fmt"

	"github.com/linuxboot/droidboot/pkg/disk"
	"github.com/linuxboot/droidboot/pkg/log"
)

// Image is an opened disk carrying a validated boot image header.
type Image struct {
	Header *Header
	d      disk.Disk
}

// Open opens the named disk and reads its header. The disk is closed again
// if the header is not valid.
func Open(o disk.Opener, name string) (*Image, error) {
	d, err := o.Open(name)
	if err != nil {
		return nil, err
	}
	h, err := ReadHeader(d, nil)
	if err != nil {
		closeDisk(d)
		return nil, err
	}
	log.Debugf("%s: boot image %q, page size %d", name, h.NameString(), h.PageSize)
	return &Image{Header: h, d: d}, nil
}

// Disk returns the disk of the image.
func (img *Image) Disk() disk.Disk {
	return img.d
}

// Kernel returns a view of the kernel.
func (img *Image) Kernel() (*View, error) {
	return NewView(KernelName, img.d, img.Header.KernelRange())
}

// Ramdisk returns a view of the ramdisk. Images without one yield a
// *RamdiskNotFoundError.
func (img *Image) Ramdisk() (*View, error) {
	if img.Header.RamdiskSize == 0 {
		return nil, &RamdiskNotFoundError{Device: img.d.Name()}
	}
	return NewView(RamdiskName, img.d, img.Header.RamdiskRange())
}

// Close closes the disk. Views of the image must not be used afterwards.
func (img *Image) Close() error {
	return img.d.Close()
}

func closeDisk(d disk.Disk) {
	if err := d.Close(); err != nil {
		log.Warnf("closing %s: %v", d.Name(), err)
	}
}

// LoadKernel opens the named disk and returns a view of its kernel along
// with the disk, which the caller must close once done with the view.
// Exactly CmdlineSize bytes of the header's command line are copied into
// cmdline; they are not necessarily NUL-terminated. On error the disk is
// already closed.
func LoadKernel(o disk.Opener, name string, cmdline []byte) (*View, disk.Disk, error) {
	if len(cmdline) < CmdlineSize {
		return nil, nil, fmt.Errorf("%w: %d < %d", ErrShortBuffer, len(cmdline), CmdlineSize)
	}
	img, err := Open(o, name)
	if err != nil {
		return nil, nil, err
	}
	v, err := img.Kernel()
	if err != nil {
		closeDisk(img.d)
		return nil, nil, err
	}
	copy(cmdline[:CmdlineSize], img.Header.Cmdline[:])
	return v, img.d, nil
}

// LoadInitrd opens the named disk and returns a view of its ramdisk along
// with the disk, which the caller must close once done with the view. On
// error the disk is already closed.
func LoadInitrd(o disk.Opener, name string) (*View, disk.Disk, error) {
	img, err := Open(o, name)
	if err != nil {
		return nil, nil, err
	}
	v, err := img.Ramdisk()
	if err != nil {
		closeDisk(img.d)
		return nil, nil, err
	}
	return v, img.d, nil
}
