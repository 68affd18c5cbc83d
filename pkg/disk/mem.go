// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disk

import (
	"os"
	"sync"
)

// MemOpener serves disks from in-memory images keyed by name. It counts
// open handles so callers can check that every opened disk was closed.
type MemOpener struct {
	mu     sync.Mutex
	images map[string][]byte
	open   int
}

// NewMemOpener returns a MemOpener serving the given images. The slices are
// not copied.
func NewMemOpener(images map[string][]byte) *MemOpener {
	if images == nil {
		images = make(map[string][]byte)
	}
	return &MemOpener{images: images}
}

// Put adds or replaces an image.
func (o *MemOpener) Put(name string, image []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.images[name] = image
}

// Open implements Opener.
func (o *MemOpener) Open(name string) (Disk, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, ok := o.images[name]
	if !ok {
		return nil, &OpenError{Name: name, Err: os.ErrNotExist}
	}
	o.open++
	return &memDisk{name: name, b: b, owner: o}, nil
}

// OpenCount returns the number of disks opened and not yet closed.
func (o *MemOpener) OpenCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.open
}

type memDisk struct {
	name   string
	b      []byte
	owner  *MemOpener
	closed bool
}

func (d *memDisk) Name() string { return d.name }

func (d *memDisk) Size() int64 { return int64(len(d.b)) }

func (d *memDisk) ReadAt(p []byte, off int64) (int, error) {
	if d.closed {
		return 0, os.ErrClosed
	}
	return readAt(d.b, p, off)
}

func (d *memDisk) Close() error {
	if d.closed {
		return os.ErrClosed
	}
	d.closed = true
	if d.owner != nil {
		d.owner.mu.Lock()
		d.owner.open--
		d.owner.mu.Unlock()
	}
	return nil
}
