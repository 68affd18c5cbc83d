// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/linuxboot/droidboot/cmds/bootimg/commands"
	"github.com/linuxboot/droidboot/pkg/bootimg"
	droidbytes "github.com/linuxboot/droidboot/pkg/bytes"
)

var _ commands.Command = (*Command)(nil)

// Command prints the header of a boot image.
type Command struct {
	commands.ImageOptions
	Format string `long:"format" description:"output format [text, table, json]" default:"text"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the boot image header"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Validates the boot image header and prints it. The table format also shows\n" +
		"the byte range every part occupies on the disk."
}

type jsonHeader struct {
	Name         string
	Cmdline      string
	ExtraCmdline string
	KernelAddr   uint32
	RamdiskAddr  uint32
	SecondAddr   uint32
	TagsAddr     uint32
	PageSize     uint32
	ID           [bootimg.IDWords]uint32
	Kernel       droidbytes.Range
	Ramdisk      droidbytes.Range
	Second       droidbytes.Range
}

func newJSONHeader(h *bootimg.Header) jsonHeader {
	return jsonHeader{
		Name:         h.NameString(),
		Cmdline:      h.CmdlineString(),
		ExtraCmdline: h.ExtraCmdlineString(),
		KernelAddr:   h.KernelAddr,
		RamdiskAddr:  h.RamdiskAddr,
		SecondAddr:   h.SecondAddr,
		TagsAddr:     h.TagsAddr,
		PageSize:     h.PageSize,
		ID:           h.ID,
		Kernel:       h.KernelRange(),
		Ramdisk:      h.RamdiskRange(),
		Second:       h.SecondRange(),
	}
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
	h := img.Header

	switch strings.ToLower(strings.TrimSpace(cmd.Format)) {
	case "text":
		fmt.Fprint(commands.Stdout, h.Summary())
	case "table":
		fmt.Fprint(commands.Stdout, layoutTable(h, img.Disk().Size()))
		fmt.Fprint(commands.Stdout, h.Summary())
	case "json":
		b, err := json.MarshalIndent(newJSONHeader(h), "", "    ")
		if err != nil {
			return fmt.Errorf("cannot marshal JSON: %w", err)
		}
		fmt.Fprintln(commands.Stdout, string(b))
	default:
		return commands.ErrArgs{Err: fmt.Errorf("unknown format '%s'", cmd.Format)}
	}
	return nil
}

func layoutTable(h *bootimg.Header, diskSize int64) string {
	t := table.NewWriter()
	t.SetTitle("Boot image layout")
	t.AppendHeader(table.Row{"Part", "Offset", "Length", "Size", "Fits"})
	names := []string{"header", bootimg.KernelName, bootimg.RamdiskName, "second"}
	for i, r := range h.Layout() {
		fits := "unknown"
		if end, ok := r.End(); ok && diskSize >= 0 {
			fits = fmt.Sprintf("%v", end <= uint64(diskSize))
		}
		t.AppendRow(table.Row{
			names[i],
			fmt.Sprintf("0x%-10x", r.Offset),
			fmt.Sprintf("0x%-10x", r.Length),
			humanize.IBytes(r.Length),
			fits,
		})
	}
	return t.Render() + "\n"
}
