// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip implements Compressor, the format of most Android ramdisks.
type Gzip struct{}

// Name returns the type of compression employed.
func (c *Gzip) Name() string {
	return "GZIP"
}

// Magic implements Compressor.
func (c *Gzip) Magic() []byte {
	return []byte{0x1f, 0x8b}
}

// NewReader implements Compressor.
func (c *Gzip) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// Decode decodes a byte slice of gzip data.
func (c *Gzip) Decode(encodedData []byte) ([]byte, error) {
	return decodeAll(c, encodedData)
}

// Encode encodes a byte slice with gzip.
func (c *Gzip) Encode(decodedData []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
