// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check validates byte ranges against the size of the area that
// is supposed to contain them.
package check

import (
	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/droidboot/pkg/bytes"
)

// Within checks that range r lies inside [0, size):
// * Offset+Length does not overflow
// * Offset < size, unless r is empty
// * Offset+Length <= size
//
// All violated conditions are reported together.
func Within(r bytes.Range, size uint64) error {
	var result *multierror.Error
	end, ok := r.End()
	if !ok {
		result = multierror.Append(result, &ErrEndOverflow{Offset: r.Offset, Length: r.Length})
	}
	if r.Length != 0 && r.Offset >= size {
		result = multierror.Append(result, &ErrStartOutOfBounds{Size: size, Offset: r.Offset})
	}
	if ok && end > size {
		result = multierror.Append(result, &ErrEndOutOfBounds{Size: size, End: end})
	}

	return result.ErrorOrNil()
}
