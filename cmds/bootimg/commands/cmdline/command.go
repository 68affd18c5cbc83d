// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"

	"github.com/linuxboot/droidboot/cmds/bootimg/commands"
	"github.com/linuxboot/droidboot/pkg/bootimg"
)

var _ commands.Command = (*Command)(nil)

// Command prints the kernel command line of a boot image.
type Command struct {
	commands.ImageOptions
	Extra bool `long:"extra" description:"append the extra command line"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the kernel command line"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints the kernel command line stored in the boot image header, up to\n" +
		"the first NUL byte."
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

	img, err := bootimg.Open(cmd.Opener(), cmd.ImagePath)
	if err != nil {
		return err
	}
	defer img.Close()

	line := img.Header.CmdlineString()
	if cmd.Extra {
		line += img.Header.ExtraCmdlineString()
	}
	fmt.Fprintln(commands.Stdout, line)
	return nil
}
