// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/linuxboot/droidboot/cmds/bootimg/commands"
	"github.com/linuxboot/droidboot/pkg/bootimg"
	"github.com/linuxboot/droidboot/pkg/compression"
	"github.com/linuxboot/droidboot/pkg/disk"
	"github.com/linuxboot/droidboot/pkg/log"
)

var _ commands.Command = (*Command)(nil)

// Command copies the kernel or the ramdisk out of a boot image.
type Command struct {
	commands.ImageOptions
	Part       string `short:"p" long:"part" description:"part to extract [kernel, ramdisk]" required:"true"`
	OutputPath string `short:"o" long:"output" description:"path of the output file, - for stdout" required:"true"`
	Decompress bool   `long:"decompress" description:"decompress the part (gzip, zstd, lz4, xz, lzma)"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "extracts the kernel or the ramdisk"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Streams the kernel or the ramdisk out of the boot image, optionally\n" +
		"decompressing it. The compression format is detected from its magic."
}

func (cmd *Command) load(o disk.Opener) (*bootimg.View, disk.Disk, error) {
	switch cmd.Part {
	case bootimg.KernelName:
		return bootimg.LoadKernel(o, cmd.ImagePath, make([]byte, bootimg.CmdlineSize))
	case bootimg.RamdiskName:
		return bootimg.LoadInitrd(o, cmd.ImagePath)
	}
	return nil, nil, commands.ErrArgs{Err: fmt.Errorf("unknown part '%s'", cmd.Part)}
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}
	cmd.Setup()

	v, d, err := cmd.load(cmd.Opener())
	if err != nil {
		return err
	}
	defer d.Close()
	defer v.Close()

	var src io.Reader = v
	if cmd.Decompress {
		c, err := compression.DetectReader(v)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Part, err)
		}
		log.Debugf("%s is %s compressed", cmd.Part, c.Name())
		dec, err := c.NewReader(v)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Part, err)
		}
		defer dec.Close()
		src = dec
	}

	out := commands.Stdout
	if cmd.OutputPath != "-" {
		f, err := os.Create(cmd.OutputPath)
		if err != nil {
			return fmt.Errorf("unable to create the output file '%s': %w", cmd.OutputPath, err)
		}
		defer f.Close()
		out = f
	}

	n, err := io.Copy(out, src)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", cmd.Part, err)
	}
	log.Debugf("wrote %s of %s", humanize.IBytes(uint64(n)), cmd.Part)
	return nil
}
