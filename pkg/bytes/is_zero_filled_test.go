// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsZeroFilled(t *testing.T) {
	assert.True(t, IsZeroFilled(nil))
	assert.True(t, IsZeroFilled(make([]byte, 1088)))

	b := make([]byte, 8)
	b[7] = 1
	assert.False(t, IsZeroFilled(b))
	assert.True(t, IsZeroFilled(b[:7]))
}

func BenchmarkIsZeroFilled(b *testing.B) {
	d := make([]byte, 1088)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		IsZeroFilled(d)
	}
}
