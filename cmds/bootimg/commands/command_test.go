// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linuxboot/droidboot/pkg/disk"
	"github.com/linuxboot/droidboot/pkg/log"
)

func TestOpener(t *testing.T) {
	assert.Equal(t, disk.FileOpener{}, (&ImageOptions{}).Opener())
	assert.Equal(t, disk.MmapOpener{}, (&ImageOptions{Mmap: true}).Opener())
}

func TestOpenerLeavesDebugAlone(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	log.SetDebug(false)
	defer log.SetDebug(false)

	opts := &ImageOptions{Debug: true}
	opts.Opener()
	l.Debugf("after opener")
	assert.Empty(t, buf.String())

	opts.Setup()
	l.Debugf("after setup")
	assert.Contains(t, buf.String(), "after setup")
}

func TestNoExtraArgs(t *testing.T) {
	assert.NoError(t, NoExtraArgs(nil))
	assert.EqualError(t, NoExtraArgs([]string{"x"}), `invalid arguments: there are extra arguments: ["x"]`)
}
