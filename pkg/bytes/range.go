// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytes contains helpers for byte ranges inside disk images.
package bytes

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Range is a contiguous byte range of an image.
type Range struct {
	Offset uint64
	Length uint64
}

func (r Range) String() string {
	return fmt.Sprintf(`{"Offset":"0x%x", "Length":"0x%x"}`, r.Offset, r.Length)
}

// End returns the exclusive end offset of the range. ok is false if
// Offset+Length does not fit into uint64.
func (r Range) End() (end uint64, ok bool) {
	if r.Length > math.MaxUint64-r.Offset {
		return 0, false
	}
	return r.Offset + r.Length, true
}

// Intersect returns True if ranges "r" and "cmp" has at least
// one byte with the same offset.
func (r Range) Intersect(cmp Range) bool {
	if r.Length == 0 || cmp.Length == 0 {
		return false
	}

	end0, ok0 := r.End()
	end1, ok1 := cmp.End()
	if !ok0 {
		end0 = math.MaxUint64
	}
	if !ok1 {
		end1 = math.MaxUint64
	}

	return r.Offset < end1 && cmp.Offset < end0
}

// Ranges is a helper to manipulate multiple `Range`-s at once
type Ranges []Range

func (s Ranges) String() string {
	r := make([]string, 0, len(s))
	for _, oneRange := range s {
		r = append(r, oneRange.String())
	}
	return `[` + strings.Join(r, `, `) + `]`
}

// Sort sorts the slice by field Offset
func (s Ranges) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Offset < s[j].Offset
	})
}

// Overlapping returns the pairs of indexes (into s) of ranges sharing at
// least one byte.
func (s Ranges) Overlapping() [][2]int {
	var result [][2]int
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if s[i].Intersect(s[j]) {
				result = append(result, [2]int{i, j})
			}
		}
	}
	return result
}
