// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// XZ implements Compressor for xz containers.
type XZ struct{}

// Name returns the type of compression employed.
func (c *XZ) Name() string {
	return "XZ"
}

// Magic implements Compressor.
func (c *XZ) Magic() []byte {
	return []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
}

// NewReader implements Compressor.
func (c *XZ) NewReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

// Decode decodes a byte slice of xz data.
func (c *XZ) Decode(encodedData []byte) ([]byte, error) {
	return decodeAll(c, encodedData)
}

// Encode encodes a byte slice with xz.
func (c *XZ) Encode(decodedData []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LZMA implements Compressor for the legacy .lzma format, as written by
// `lzma` with the default properties.
type LZMA struct{}

// Name returns the type of compression employed.
func (c *LZMA) Name() string {
	return "LZMA"
}

// Magic implements Compressor. This is the properties byte of lc=3, lp=0,
// pb=2 followed by the low bytes of the dictionary size.
func (c *LZMA) Magic() []byte {
	return []byte{0x5d, 0x00, 0x00}
}

// NewReader implements Compressor.
func (c *LZMA) NewReader(r io.Reader) (io.ReadCloser, error) {
	lr, err := lzma.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(lr), nil
}

// Decode decodes a byte slice of lzma data.
func (c *LZMA) Decode(encodedData []byte) ([]byte, error) {
	return decodeAll(c, encodedData)
}

// Encode encodes a byte slice with lzma.
func (c *LZMA) Encode(decodedData []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
