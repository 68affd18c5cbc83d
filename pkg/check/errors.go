// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"fmt"
)

// ErrEndOverflow means `Offset+Length` does not fit into 64 bits
type ErrEndOverflow struct {
	Offset uint64
	Length uint64
}

func (err *ErrEndOverflow) Error() string {
	return fmt.Sprintf("end offset overflows: %#x + %#x", err.Offset, err.Length)
}

// ErrStartOutOfBounds means the range begins at or past the end of the
// containing area.
type ErrStartOutOfBounds struct {
	Size   uint64
	Offset uint64
}

func (err *ErrStartOutOfBounds) Error() string {
	return fmt.Sprintf("start offset is outside of the bounds: %#x >= %#x",
		err.Offset, err.Size)
}

// ErrEndOutOfBounds means the range ends past the end of the containing area.
type ErrEndOutOfBounds struct {
	Size uint64
	End  uint64
}

func (err *ErrEndOutOfBounds) Error() string {
	return fmt.Sprintf("end offset is outside of the bounds: %#x > %#x",
		err.End, err.Size)
}
