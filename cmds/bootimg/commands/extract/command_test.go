// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/droidboot/cmds/bootimg/commands"
	"github.com/linuxboot/droidboot/pkg/bootimg"
	"github.com/linuxboot/droidboot/pkg/compression"
)

func writeImage(t *testing.T, kernel, ramdisk []byte) string {
	h := bootimg.Header{
		Magic:       bootimg.Magic,
		KernelSize:  uint32(len(kernel)),
		RamdiskSize: uint32(len(ramdisk)),
		PageSize:    2048,
	}
	hb, err := h.MarshalBinary()
	require.NoError(t, err)

	img := make([]byte, h.ImageSize())
	copy(img, hb)
	copy(img[h.KernelRange().Offset:], kernel)
	copy(img[h.RamdiskRange().Offset:], ramdisk)

	path := filepath.Join(t.TempDir(), "boot.img")
	require.NoError(t, os.WriteFile(path, img, 0o644))
	return path
}

func TestExtract(t *testing.T) {
	kernel := bytes.Repeat([]byte("kernel"), 1000)
	cpio := bytes.Repeat([]byte("070701"), 500)
	gz, err := (&compression.Gzip{}).Encode(cpio)
	require.NoError(t, err)
	image := writeImage(t, kernel, gz)

	for _, tt := range []struct {
		name       string
		part       string
		mmap       bool
		decompress bool
		want       []byte
	}{
		{"kernel", bootimg.KernelName, false, false, kernel},
		{"kernel_mmap", bootimg.KernelName, true, false, kernel},
		{"ramdisk_raw", bootimg.RamdiskName, false, false, gz},
		{"ramdisk_decompressed", bootimg.RamdiskName, true, true, cpio},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out")
			cmd := &Command{
				ImageOptions: commands.ImageOptions{ImagePath: image, Mmap: tt.mmap},
				Part:         tt.part,
				OutputPath:   out,
				Decompress:   tt.decompress,
			}
			require.NoError(t, cmd.Execute(nil))

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractToStdout(t *testing.T) {
	image := writeImage(t, []byte("zImage"), []byte("initrd"))

	var buf bytes.Buffer
	commands.Stdout = &buf
	defer func() { commands.Stdout = os.Stdout }()

	cmd := &Command{
		ImageOptions: commands.ImageOptions{ImagePath: image},
		Part:         bootimg.RamdiskName,
		OutputPath:   "-",
	}
	require.NoError(t, cmd.Execute(nil))
	assert.Equal(t, "initrd", buf.String())
}

func TestExtractErrors(t *testing.T) {
	image := writeImage(t, []byte("zImage"), nil)

	t.Run("unknown_part", func(t *testing.T) {
		cmd := &Command{ImageOptions: commands.ImageOptions{ImagePath: image}, Part: "dtb", OutputPath: "-"}
		var argsErr commands.ErrArgs
		assert.True(t, errors.As(cmd.Execute(nil), &argsErr))
	})
	t.Run("no_ramdisk", func(t *testing.T) {
		cmd := &Command{ImageOptions: commands.ImageOptions{ImagePath: image}, Part: bootimg.RamdiskName, OutputPath: "-"}
		assert.True(t, errors.Is(cmd.Execute(nil), bootimg.ErrRamdiskNotFound))
	})
	t.Run("not_compressed", func(t *testing.T) {
		cmd := &Command{
			ImageOptions: commands.ImageOptions{ImagePath: image},
			Part:         bootimg.KernelName,
			OutputPath:   filepath.Join(t.TempDir(), "out"),
			Decompress:   true,
		}
		assert.True(t, errors.Is(cmd.Execute(nil), compression.ErrUnknownFormat))
	})
	t.Run("extra_args", func(t *testing.T) {
		cmd := &Command{ImageOptions: commands.ImageOptions{ImagePath: image}, Part: bootimg.KernelName, OutputPath: "-"}
		assert.Error(t, cmd.Execute([]string{"oops"}))
	})
}
