// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bootimg parses Android boot image (version 0) headers and exposes
// the kernel and ramdisk they describe as read-only views of the disk.
//
// Layout of a boot image, every part starting on a page boundary:
//
//	+-----------------+
//	| header          | 1 page
//	+-----------------+
//	| kernel          | ceil(kernel_size / page_size) pages
//	+-----------------+
//	| ramdisk         | ceil(ramdisk_size / page_size) pages
//	+-----------------+
//	| second stage    | ceil(second_size / page_size) pages
//	+-----------------+
package bootimg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dustin/go-humanize"

	droidbytes "github.com/linuxboot/droidboot/pkg/bytes"
	"github.com/linuxboot/droidboot/pkg/disk"
)

// Magic is the signature every boot image starts with.
var Magic = [MagicSize]byte{'A', 'N', 'D', 'R', 'O', 'I', 'D', '!'}

// Boot image format constants.
const (
	MagicSize        = 8
	NameSize         = 16
	CmdlineSize      = 512
	IDWords          = 8
	ExtraCmdlineSize = 1024

	// HeaderSize is the on-disk size of a Header.
	HeaderSize = 1632

	// offset of Header.Unused
	unusedOffset = MagicSize + 8*4
	unusedSize   = 2 * 4
)

// Header is struct boot_img_hdr. On disk every integer is little-endian;
// in a parsed Header they hold host values.
type Header struct {
	Magic [MagicSize]byte

	// Size of the kernel in bytes and its physical load address
	KernelSize uint32
	KernelAddr uint32

	// Size of the ramdisk in bytes and its physical load address
	RamdiskSize uint32
	RamdiskAddr uint32

	// Size of the second stage bootloader in bytes and its load address
	SecondSize uint32
	SecondAddr uint32

	// Kernel tags physical load address
	TagsAddr uint32
	// Flash page size; every part of the image is aligned to it
	PageSize uint32
	// Must be zero
	Unused [2]uint32

	// Product name; not necessarily NUL-terminated
	Name [NameSize]byte
	// Kernel command line; not necessarily NUL-terminated
	Cmdline [CmdlineSize]byte

	// Timestamp/checksum/SHA-1/...
	ID [IDWords]uint32

	// Continuation of Cmdline
	ExtraCmdline [ExtraCmdlineSize]byte
}

// Parse decodes and validates a Header from the first HeaderSize bytes of b.
// Errors are of type *NotABootImageError.
func Parse(b []byte) (*Header, error) {
	h, err := parse(b)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func parse(b []byte) (*Header, *NotABootImageError) {
	if len(b) < HeaderSize {
		return nil, &NotABootImageError{Reason: fmt.Sprintf("header needs %d bytes, got %d", HeaderSize, len(b))}
	}
	if !bytes.Equal(b[:MagicSize], Magic[:]) {
		return nil, &NotABootImageError{Reason: fmt.Sprintf("bad magic %q", b[:MagicSize])}
	}
	// Checked on the raw bytes: zero is zero in any byte order.
	if !droidbytes.IsZeroFilled(b[unusedOffset : unusedOffset+unusedSize]) {
		return nil, &NotABootImageError{Reason: "unused words are not zero"}
	}

	var h Header
	if err := binary.Read(bytes.NewReader(b[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, &NotABootImageError{Err: err}
	}
	if h.PageSize == 0 {
		return nil, &NotABootImageError{Reason: "page size is zero"}
	}
	return &h, nil
}

// ReadHeader reads and validates the Header at offset 0 of d. hook, if not
// nil, is passed to the disk read.
func ReadHeader(d disk.Disk, hook disk.ReadHook) (*Header, error) {
	buf := make([]byte, HeaderSize)
	if err := disk.ReadFull(d, buf, 0, hook); err != nil {
		return nil, &NotABootImageError{Device: d.Name(), Err: err}
	}
	h, perr := parse(buf)
	if perr != nil {
		perr.Device = d.Name()
		return nil, perr
	}
	return h, nil
}

// MarshalBinary encodes h in its on-disk, little-endian form.
func (h *Header) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageAlign rounds n up to a multiple of the page size. It works on 64 bits
// so that it cannot wrap for any 32-bit input.
func (h *Header) pageAlign(n uint32) uint64 {
	p := uint64(h.PageSize)
	return (uint64(n) + p - 1) / p * p
}

// KernelRange returns where the kernel is stored: right after the one-page
// header.
func (h *Header) KernelRange() droidbytes.Range {
	return droidbytes.Range{
		Offset: uint64(h.PageSize),
		Length: uint64(h.KernelSize),
	}
}

// RamdiskRange returns where the ramdisk is stored:
// page_size * (1 + ceil(kernel_size / page_size)).
func (h *Header) RamdiskRange() droidbytes.Range {
	return droidbytes.Range{
		Offset: uint64(h.PageSize) + h.pageAlign(h.KernelSize),
		Length: uint64(h.RamdiskSize),
	}
}

// SecondRange returns where the second stage bootloader is stored.
func (h *Header) SecondRange() droidbytes.Range {
	return droidbytes.Range{
		Offset: h.RamdiskRange().Offset + h.pageAlign(h.RamdiskSize),
		Length: uint64(h.SecondSize),
	}
}

// ImageSize returns the size of the whole image including padding.
func (h *Header) ImageSize() uint64 {
	return h.SecondRange().Offset + h.pageAlign(h.SecondSize)
}

// Layout returns the ranges of the header and of every part, in on-disk
// order.
func (h *Header) Layout() droidbytes.Ranges {
	return droidbytes.Ranges{
		{Offset: 0, Length: HeaderSize},
		h.KernelRange(),
		h.RamdiskRange(),
		h.SecondRange(),
	}
}

// NameString returns the product name up to the first NUL.
func (h *Header) NameString() string {
	return cString(h.Name[:])
}

// CmdlineString returns the kernel command line up to the first NUL.
func (h *Header) CmdlineString() string {
	return cString(h.Cmdline[:])
}

// ExtraCmdlineString returns the command line continuation up to the first
// NUL.
func (h *Header) ExtraCmdlineString() string {
	return cString(h.ExtraCmdline[:])
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Summary prints a multi-line summary of the header's content.
func (h *Header) Summary() string {
	s := fmt.Sprintf("Magic          : %s\n", h.Magic[:])
	s += fmt.Sprintf("Kernel Size    : %#08x %s\n", h.KernelSize, humanize.IBytes(uint64(h.KernelSize)))
	s += fmt.Sprintf("Kernel Addr    : %#08x\n", h.KernelAddr)
	s += fmt.Sprintf("Ramdisk Size   : %#08x %s\n", h.RamdiskSize, humanize.IBytes(uint64(h.RamdiskSize)))
	s += fmt.Sprintf("Ramdisk Addr   : %#08x\n", h.RamdiskAddr)
	s += fmt.Sprintf("Second Size    : %#08x %s\n", h.SecondSize, humanize.IBytes(uint64(h.SecondSize)))
	s += fmt.Sprintf("Second Addr    : %#08x\n", h.SecondAddr)
	s += fmt.Sprintf("Tags Addr      : %#08x\n", h.TagsAddr)
	s += fmt.Sprintf("Page Size      : %d\n", h.PageSize)
	s += fmt.Sprintf("Name           : %q\n", h.NameString())
	s += fmt.Sprintf("Cmdline        : %q\n", h.CmdlineString())
	s += fmt.Sprintf("ID             : %08x\n", h.ID)
	s += fmt.Sprintf("Extra Cmdline  : %q\n", h.ExtraCmdlineString())

	return s
}
