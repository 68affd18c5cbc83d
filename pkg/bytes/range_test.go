// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeEnd(t *testing.T) {
	end, ok := Range{Offset: 2048, Length: 4097}.End()
	require.True(t, ok)
	assert.Equal(t, uint64(6145), end)

	_, ok = Range{Offset: math.MaxUint64, Length: 1}.End()
	assert.False(t, ok)

	end, ok = Range{Offset: math.MaxUint64, Length: 0}.End()
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), end)
}

func TestRangeIntersect(t *testing.T) {
	t.Run("adjacent", func(t *testing.T) {
		assert.False(t, Range{Offset: 0, Length: 2048}.Intersect(Range{Offset: 2048, Length: 1}))
	})
	t.Run("overlap", func(t *testing.T) {
		assert.True(t, Range{Offset: 0, Length: 2049}.Intersect(Range{Offset: 2048, Length: 1}))
	})
	t.Run("empty", func(t *testing.T) {
		assert.False(t, Range{Offset: 0, Length: 0}.Intersect(Range{Offset: 0, Length: 10}))
	})
	t.Run("overflowing_end", func(t *testing.T) {
		assert.True(t, Range{Offset: math.MaxUint64 - 1, Length: 10}.Intersect(Range{Offset: math.MaxUint64 - 1, Length: 1}))
	})
}

func TestRangesSortAndOverlapping(t *testing.T) {
	entries := Ranges{
		{Offset: 8192, Length: 100},
		{Offset: 0, Length: 2048},
		{Offset: 2048, Length: 6145},
	}
	entries.Sort()
	assert.Equal(t, Ranges{
		{Offset: 0, Length: 2048},
		{Offset: 2048, Length: 6145},
		{Offset: 8192, Length: 100},
	}, entries)
	assert.Equal(t, [][2]int{{1, 2}}, entries.Overlapping())
	assert.Equal(t, `[{"Offset":"0x0", "Length":"0x800"}]`, entries[:1].String())
}
