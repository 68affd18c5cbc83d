// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcb

import (
	"github.com/linuxboot/droidboot/pkg/log"
)

// Watcher keeps CommandVar in sync with the disk named by DiskVar.
//
// Every write to DiskVar is validated by reading the BCB of the new disk
// before the store commits it. A successful validation publishes the new
// command as a side effect.
type Watcher struct {
	Reader *Reader

	// AcceptInvalid commits writes of disks that fail validation, only
	// logging the error. This is how GRUB behaves. When false such writes
	// are rejected and the previous disk stays in place.
	AcceptInvalid bool

	// Logger receives validation errors that are not returned. Defaults to
	// log.DefaultLogger.
	Logger log.Logger
}

func (w *Watcher) logger() log.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return log.DefaultLogger
}

// Start reads the BCB of the disk already named by DiskVar, if any, and
// installs the write hook. Errors of that first read are logged.
func (w *Watcher) Start() {
	store := w.Reader.Store
	if name, ok := store.Get(DiskVar); ok && name != "" {
		if err := w.Validate(name); err != nil {
			w.logger().Errorf("%v", err)
		}
	}
	store.RegisterWriteHook(DiskVar, w.handleWrite)
}

// Stop removes the write hook.
func (w *Watcher) Stop() {
	w.Reader.Store.UnregisterWriteHook(DiskVar)
}

// Validate reads the BCB of the named disk, publishing its command on
// success.
func (w *Watcher) Validate(name string) error {
	return w.Reader.Read(name)
}

func (w *Watcher) handleWrite(value string) (string, error) {
	if err := w.Validate(value); err != nil {
		if !w.AcceptInvalid {
			return "", err
		}
		w.logger().Errorf("%v", err)
	}
	return value, nil
}
