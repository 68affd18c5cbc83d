// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/droidboot/pkg/disk"
	"github.com/linuxboot/droidboot/pkg/log"
)

// Command is an interface of implementations of verbs
// (like "info", "extract" etc of "bootimg info"/"bootimg extract")
type Command interface {
	flags.Commander

	// ShortDescription explains what this command does in one line
	ShortDescription() string

	// LongDescription explains what this verb does (without limitation in amount of lines)
	LongDescription() string
}

// Stdout is where commands print their results.
var Stdout io.Writer = os.Stdout

// ImageOptions are the options shared by the commands reading an image.
type ImageOptions struct {
	ImagePath string `short:"f" long:"image" description:"path to the boot image or block device" required:"true"`
	Mmap      bool   `long:"mmap" description:"map the image into memory instead of reading it"`
	Debug     bool   `short:"d" long:"debug" description:"enable debug prints"`
}

// Setup applies the options that affect the whole process. Commands call
// it first thing in Execute.
func (opts *ImageOptions) Setup() {
	log.SetDebug(opts.Debug)
}

// Opener returns the disk opener selected by the options.
func (opts *ImageOptions) Opener() disk.Opener {
	if opts.Mmap {
		return disk.MmapOpener{}
	}
	return disk.FileOpener{}
}

// ErrArgs means arguments are invalid
type ErrArgs struct {
	Err error
}

func (err ErrArgs) Error() string {
	return fmt.Sprintf("invalid arguments: %v", err.Err)
}

func (err ErrArgs) Unwrap() error {
	return err.Err
}

// NoExtraArgs fails if a command was given positional arguments it does not
// take.
func NoExtraArgs(args []string) error {
	if len(args) != 0 {
		return ErrArgs{Err: fmt.Errorf("there are extra arguments: %q", args)}
	}
	return nil
}
