// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression detects and decodes the compression formats used for
// Android ramdisks.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Compressor defines a single compression scheme (such as gzip).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Magic returns the bytes every stream of this format starts with.
	Magic() []byte

	// NewReader returns a reader decoding r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

// ErrUnknownFormat is returned when no Compressor recognises the data.
var ErrUnknownFormat = errors.New("unknown compression format")

// Compressors lists the supported formats, in detection order.
var Compressors = []Compressor{
	&Gzip{},
	&Zstd{},
	&LZ4{},
	&XZ{},
	&LZMA{},
}

// MaxMagicSize is the number of bytes Detect needs to see.
const MaxMagicSize = 6

// Detect returns the Compressor whose magic prefixes b, or nil.
func Detect(b []byte) Compressor {
	for _, c := range Compressors {
		if bytes.HasPrefix(b, c.Magic()) {
			return c
		}
	}
	return nil
}

// DetectReader peeks at the start of r to detect its format, then rewinds r
// to where it was.
func DetectReader(r io.ReadSeeker) (Compressor, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	magic := make([]byte, MaxMagicSize)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}
	c := Detect(magic[:n])
	if c == nil {
		return nil, fmt.Errorf("%w: magic % x", ErrUnknownFormat, magic[:n])
	}
	return c, nil
}

func decodeAll(c Compressor, encodedData []byte) ([]byte, error) {
	r, err := c.NewReader(bytes.NewReader(encodedData))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
