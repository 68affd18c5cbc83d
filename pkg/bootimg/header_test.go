// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bootimg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	droidbytes "github.com/linuxboot/droidboot/pkg/bytes"
	"github.com/linuxboot/droidboot/pkg/disk"
)

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func field(s string, size int) []byte {
	return []byte(s + strings.Repeat("\x00", size-len(s)))
}

// Boot image header is stored in little-endian.
var fakeHeader = bytes.Join([][]byte{
	// Magic
	[]byte("ANDROID!"),
	// KernelSize, KernelAddr
	{0x01, 0x10, 0x00, 0x00}, {0x00, 0x80, 0x00, 0x10},
	// RamdiskSize, RamdiskAddr
	{0x00, 0x02, 0x00, 0x00}, {0x00, 0x00, 0x00, 0x11},
	// SecondSize, SecondAddr
	{0x00, 0x00, 0x00, 0x00}, {0x00, 0x00, 0xf0, 0x10},
	// TagsAddr
	{0x00, 0x01, 0x00, 0x10},
	// PageSize
	{0x00, 0x08, 0x00, 0x00},
	// Unused
	make([]byte, 8),
	// Name (16 bytes)
	field("grouper", NameSize),
	// Cmdline (512 bytes)
	field("console=ttyS0 androidboot.hardware=grouper", CmdlineSize),
	// ID (8 words)
	bytes.Repeat([]byte{0xef, 0xbe, 0xad, 0xde}, IDWords),
	// ExtraCmdline (1024 bytes)
	field("quiet", ExtraCmdlineSize),
}, []byte{})

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, HeaderSize, len(fakeHeader))
	assert.Equal(t, uintptr(HeaderSize), unsafe.Sizeof(Header{}))
}

func TestParse(t *testing.T) {
	h, err := Parse(fakeHeader)
	require.NoError(t, err)
	assert.Equal(t, Magic, h.Magic)
	assert.Equal(t, uint32(4097), h.KernelSize)
	assert.Equal(t, uint32(0x10008000), h.KernelAddr)
	assert.Equal(t, uint32(512), h.RamdiskSize)
	assert.Equal(t, uint32(0x11000000), h.RamdiskAddr)
	assert.Equal(t, uint32(0), h.SecondSize)
	assert.Equal(t, uint32(0x10f00000), h.SecondAddr)
	assert.Equal(t, uint32(0x10000100), h.TagsAddr)
	assert.Equal(t, uint32(2048), h.PageSize)
	for _, id := range h.ID {
		assert.Equal(t, uint32(0xdeadbeef), id)
	}
	assert.Equal(t, "grouper", h.NameString())
	assert.Equal(t, "console=ttyS0 androidboot.hardware=grouper", h.CmdlineString())
}

func TestParseRejects(t *testing.T) {
	for name, mutate := range map[string]func(b []byte){
		"magic":     func(b []byte) { copy(b, "ANDROID?") },
		"magic_nul": func(b []byte) { b[0] = 0 },
		"unused0":   func(b []byte) { copy(b[unusedOffset:], le32(1)) },
		"unused1":   func(b []byte) { copy(b[unusedOffset+4:], le32(0x01000000)) },
		"page_size": func(b []byte) { copy(b[unusedOffset-4:], le32(0)) },
	} {
		t.Run(name, func(t *testing.T) {
			b := append([]byte{}, fakeHeader...)
			mutate(b)
			_, err := Parse(b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotABootImage))
		})
	}
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse(fakeHeader[:HeaderSize-1])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotABootImage))
}

func TestParseArbitraryPrefixes(t *testing.T) {
	// Anything not starting with the magic is rejected, whatever follows.
	for _, prefix := range []string{"", "android!", "ANDROID ", "\x00\x00\x00\x00\x00\x00\x00\x00", "VNDRBOOT"} {
		b := append([]byte{}, fakeHeader...)
		copy(b, field(prefix, MagicSize))
		_, err := Parse(b)
		assert.True(t, errors.Is(err, ErrNotABootImage), "%q", prefix)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, h := range []Header{
		{
			Magic:       Magic,
			KernelSize:  0x00a1b2c3,
			KernelAddr:  0x10008000,
			RamdiskSize: 0x12345678,
			RamdiskAddr: 0x11000000,
			SecondSize:  0x1,
			SecondAddr:  0xfedcba98,
			TagsAddr:    0x10000100,
			PageSize:    4096,
			ID:          [IDWords]uint32{1, 2, 3, 4, 0xff000000, 0x00ff0000, 0x0000ff00, 0x000000ff},
		},
		{
			Magic:       Magic,
			KernelSize:  math.MaxUint32,
			RamdiskSize: math.MaxUint32,
			SecondSize:  math.MaxUint32,
			PageSize:    math.MaxUint32,
		},
	} {
		copy(h.Cmdline[:], "console=ttyS0")
		b, err := h.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, b, HeaderSize)

		got, err := Parse(b)
		require.NoError(t, err)
		assert.Equal(t, h, *got)
	}
}

func TestMarshalIsLittleEndian(t *testing.T) {
	h := Header{Magic: Magic, KernelSize: 0x01020304, PageSize: 2048}
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b[MagicSize:MagicSize+4])
}

func TestRanges(t *testing.T) {
	for _, tt := range []struct {
		pageSize, kernelSize, ramdiskSize uint32
		ramdiskOffset, secondOffset      uint64
	}{
		{2048, 4097, 512, 8192, 10240},
		{2048, 4096, 512, 6144, 8192},
		{2048, 0, 0, 2048, 2048},
		{2048, 1, 2049, 4096, 8192},
		{4096, 4097, 1, 12288, 16384},
		{1, 7, 3, 8, 11},
		// 32-bit arithmetic would wrap here.
		{math.MaxUint32, math.MaxUint32, 1, 2 * math.MaxUint32, 3 * math.MaxUint32},
	} {
		h := Header{PageSize: tt.pageSize, KernelSize: tt.kernelSize, RamdiskSize: tt.ramdiskSize}
		assert.Equal(t, droidbytes.Range{Offset: uint64(tt.pageSize), Length: uint64(tt.kernelSize)}, h.KernelRange())
		assert.Equal(t, droidbytes.Range{Offset: tt.ramdiskOffset, Length: uint64(tt.ramdiskSize)}, h.RamdiskRange())
		assert.Equal(t, tt.secondOffset, h.SecondRange().Offset)
		// page_size * (1 + ceil(kernel_size / page_size))
		p, k := uint64(tt.pageSize), uint64(tt.kernelSize)
		assert.Equal(t, p*(1+(k+p-1)/p), h.RamdiskRange().Offset)
	}
}

func TestLayoutDoesNotOverlap(t *testing.T) {
	h, err := Parse(fakeHeader)
	require.NoError(t, err)
	layout := h.Layout()
	assert.Empty(t, layout.Overlapping())
	assert.Equal(t, uint64(10240), h.ImageSize())
}

func TestReadHeader(t *testing.T) {
	o := disk.NewMemOpener(map[string][]byte{
		"boot":  fakeHeader,
		"short": fakeHeader[:100],
	})

	d, err := o.Open("boot")
	require.NoError(t, err)
	defer d.Close()
	h, err := ReadHeader(d, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), h.PageSize)

	s, err := o.Open("short")
	require.NoError(t, err)
	defer s.Close()
	_, err = ReadHeader(s, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotABootImage))
	assert.True(t, errors.Is(err, disk.ErrReadFailed))
	assert.Contains(t, err.Error(), "short not an android bootimg")
}

func TestSummary(t *testing.T) {
	h, err := Parse(fakeHeader)
	require.NoError(t, err)
	s := h.Summary()
	assert.Contains(t, s, "Magic          : ANDROID!\n")
	assert.Contains(t, s, "Kernel Size    : 0x00001001 4.0 KiB\n")
	assert.Contains(t, s, "Page Size      : 2048\n")
	assert.Contains(t, s, `Name           : "grouper"`)
	assert.Contains(t, s, `Extra Cmdline  : "quiet"`)
}
