// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// bcbinfo prints the Android bootloader control block of a misc partition.
//
// Synopsis:
//
//	bcbinfo [-j] [--mmap] [--compat] [-d] DEVICE
//
// The device is selected the way a bootloader would, by writing it to
// android_bcb_disk. Without --compat a device without a valid block is an
// error; with it the device is only logged and the command stays unset.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/droidboot/pkg/bcb"
	"github.com/linuxboot/droidboot/pkg/disk"
	"github.com/linuxboot/droidboot/pkg/env"
	"github.com/linuxboot/droidboot/pkg/log"
)

type jsonMessage struct {
	Device     string
	Command    string
	Status     string
	Recovery   []string
	Stage      string
	SlotSuffix string
}

func newJSONMessage(device string, m *bcb.Message) jsonMessage {
	var recovery []string
	for _, line := range strings.Split(bcb.CString(m.Recovery[:]), "\n") {
		if line != "" {
			recovery = append(recovery, line)
		}
	}
	return jsonMessage{
		Device:     device,
		Command:    m.CommandString(),
		Status:     bcb.CString(m.Status[:]),
		Recovery:   recovery,
		Stage:      bcb.CString(m.Stage[:]),
		SlotSuffix: bcb.CString(m.SlotSuffix[:]),
	}
}

func (m jsonMessage) String() string {
	s := fmt.Sprintf("Device     : %s\n", m.Device)
	s += fmt.Sprintf("Command    : %q\n", m.Command)
	s += fmt.Sprintf("Status     : %q\n", m.Status)
	s += fmt.Sprintf("Stage      : %q\n", m.Stage)
	s += fmt.Sprintf("Slot Suffix: %q\n", m.SlotSuffix)
	s += "Recovery   :\n"
	for _, line := range m.Recovery {
		s += fmt.Sprintf("    %s\n", line)
	}
	return s
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("bcbinfo", flag.ContinueOnError)
	asJSON := fs.BoolP("json", "j", false, "Output as JSON")
	useMmap := fs.Bool("mmap", false, "map the device into memory instead of reading it")
	compat := fs.Bool("compat", false, "accept devices without a valid bcb, like GRUB does")
	debug := fs.BoolP("debug", "d", false, "enable debug prints")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one device")
	}
	device := fs.Arg(0)
	log.SetDebug(*debug)

	var opener disk.Opener = disk.FileOpener{}
	if *useMmap {
		opener = disk.MmapOpener{}
	}
	store := env.New()
	reader := &bcb.Reader{Opener: opener, Store: store}
	watcher := &bcb.Watcher{Reader: reader, AcceptInvalid: *compat}
	watcher.Start()
	defer watcher.Stop()

	if err := store.Set(bcb.DiskVar, device); err != nil {
		return err
	}
	if _, ok := store.Get(bcb.CommandVar); !ok {
		// Only reachable with --compat; the error was logged by the watcher.
		return nil
	}

	m, err := reader.Message(device)
	if err != nil {
		return err
	}
	out := newJSONMessage(device, m)
	if *asJSON {
		j, err := json.MarshalIndent(out, "", "    ")
		if err != nil {
			return fmt.Errorf("cannot marshal JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(j))
		return nil
	}
	fmt.Fprint(stdout, out.String())
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}
}
