// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// bootimg inspects Android boot images and extracts their kernel and ramdisk.
//
// Synopsis:
//
//	bootimg info -f IMAGE [--format=text|table|json]
//	bootimg cmdline -f IMAGE
//	bootimg extract -f IMAGE -p kernel|ramdisk -o OUTPUT [--decompress]
//
// An example:
//
//	bootimg info -f boot.img --format=table
//	bootimg extract -f /dev/block/by-name/boot -p ramdisk -o ramdisk.cpio --decompress
//
// Description:
//
//	info:    Print the boot image header and where each part is stored
//	cmdline: Print the kernel command line
//	extract: Copy the kernel or ramdisk out of the image
package main

import (
	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/droidboot/cmds/bootimg/commands"
	"github.com/linuxboot/droidboot/cmds/bootimg/commands/cmdline"
	"github.com/linuxboot/droidboot/cmds/bootimg/commands/extract"
	"github.com/linuxboot/droidboot/cmds/bootimg/commands/info"
	"github.com/linuxboot/droidboot/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"info":    &info.Command{},
		"cmdline": &cmdline.Command{},
		"extract": &extract.Command{},
	}
)

func main() {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("%v", err)
	}
}
