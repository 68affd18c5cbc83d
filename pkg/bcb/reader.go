// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcb

import (
	"errors"

	"github.com/linuxboot/droidboot/pkg/bytes"
	"github.com/linuxboot/droidboot/pkg/disk"
	"github.com/linuxboot/droidboot/pkg/env"
	"github.com/linuxboot/droidboot/pkg/log"
)

// Reader reads BCBs from disks and publishes their command.
type Reader struct {
	Opener disk.Opener
	Store  *env.Store
	// Hook, if set, is passed to every disk read issued by the reader.
	Hook disk.ReadHook
}

// ReadMessage reads and validates the Message at offset 0 of d.
func ReadMessage(d disk.Disk, hook disk.ReadHook) (*Message, error) {
	buf := make([]byte, MessageSize)
	if err := disk.ReadFull(d, buf, 0, hook); err != nil {
		return nil, err
	}
	if bytes.IsZeroFilled(buf) {
		log.Debugf("bcb on %s is erased", d.Name())
	}
	m, err := Parse(buf)
	var ferr *FormatError
	if errors.As(err, &ferr) {
		ferr.Device = d.Name()
	}
	return m, err
}

// Read opens the named disk, reads its BCB and on success stores the
// command under CommandVar, replacing the previous value. On failure the
// store is left untouched. The disk is always closed before returning.
func (r *Reader) Read(name string) error {
	d, err := r.Opener.Open(name)
	if err != nil {
		return err
	}
	defer closeDisk(d)

	m, err := ReadMessage(d, r.Hook)
	if err != nil {
		return err
	}
	cmd := m.CommandString()
	log.Debugf("bcb on %s: command %q", name, cmd)
	return r.Store.Set(CommandVar, cmd)
}

// Message opens the named disk and returns its BCB without publishing
// anything.
func (r *Reader) Message(name string) (*Message, error) {
	d, err := r.Opener.Open(name)
	if err != nil {
		return nil, err
	}
	defer closeDisk(d)
	return ReadMessage(d, r.Hook)
}

func closeDisk(d disk.Disk) {
	if err := d.Close(); err != nil {
		log.Warnf("closing %s: %v", d.Name(), err)
	}
}
