// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bcb reads the Android bootloader control block, the
// `struct bootloader_message` stored at the start of the misc partition,
// and publishes its command into an env.Store.
//
// The format has no magic number or version. A block is only accepted when
// its command field contains a NUL byte; nothing else distinguishes a valid
// block from unrelated disk content.
package bcb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Field sizes of struct bootloader_message.
const (
	CommandSize    = 32
	StatusSize     = 32
	RecoverySize   = 768
	StageSize      = 32
	SlotSuffixSize = 32
	ReservedSize   = 192

	// MessageSize is the on-disk size of a Message.
	MessageSize = CommandSize + StatusSize + RecoverySize + StageSize + SlotSuffixSize + ReservedSize
)

// Variables of the env.Store used by the reader and the watcher.
const (
	// DiskVar names the disk holding the BCB.
	DiskVar = "android_bcb_disk"
	// CommandVar receives the command of the last valid BCB read.
	CommandVar = "android_bcb_command"
)

// Message is struct bootloader_message as found on disk. All fields are
// byte arrays, so no byte order applies.
type Message struct {
	// Command for the bootloader, e.g. "boot-recovery".
	Command [CommandSize]byte
	// Status written back by the bootloader.
	Status [StatusSize]byte
	// Recovery command line, one argument per line.
	Recovery [RecoverySize]byte
	// Stage of a multi-stage package.
	Stage [StageSize]byte
	// SlotSuffix of the A/B slot, e.g. "_a".
	SlotSuffix [SlotSuffixSize]byte
	Reserved   [ReservedSize]byte
}

// ErrBadFormat is matched by errors returned for blocks failing validation.
var ErrBadFormat = errors.New("not a valid bcb")

// FormatError is returned when a block's command is not NUL-terminated.
type FormatError struct {
	Device string
}

func (err *FormatError) Error() string {
	if err.Device == "" {
		return ErrBadFormat.Error()
	}
	return fmt.Sprintf("%s doesn't contain a valid bcb", err.Device)
}

// Is makes errors.Is(err, ErrBadFormat) hold.
func (err *FormatError) Is(target error) bool {
	return target == ErrBadFormat
}

// Valid reports whether the command field contains a NUL terminator.
func (m *Message) Valid() bool {
	return bytes.IndexByte(m.Command[:], 0) >= 0
}

// CommandString returns the command up to, but excluding, the first NUL.
func (m *Message) CommandString() string {
	return CString(m.Command[:])
}

// CString returns b up to the first NUL byte. A field without a NUL is
// returned whole.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Parse decodes and validates a Message. b must hold at least MessageSize
// bytes; anything after that is ignored.
func Parse(b []byte) (*Message, error) {
	if len(b) < MessageSize {
		return nil, fmt.Errorf("bcb needs %d bytes, got %d", MessageSize, len(b))
	}
	var m Message
	if err := binary.Read(bytes.NewReader(b[:MessageSize]), binary.LittleEndian, &m); err != nil {
		return nil, err
	}
	if !m.Valid() {
		return nil, &FormatError{}
	}
	return &m, nil
}
