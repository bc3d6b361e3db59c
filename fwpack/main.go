// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Fwpack combines an application image and a bootloader image into a single
// flash image.
//
// Usage:
//
//	fwpack -a APP -b BOOT -o OUT [OPTIONS]
//
// The application is placed at offset 0, the bootloader at the bootloader
// offset of the selected layout. The unused bytes are set to the pad byte
// (0xff). The known layouts are:
//
//	padded  application <= 0x7000 bytes, bootloader <= 0x1000 bytes at 0x7000
//	strict  application <  0x7000 bytes, bootloader == 0x1000 bytes at 0x7000
//
// Both produce a 0x8000-byte image. The layout parameters can be overridden
// with the --app-* and --boot-* options and --pad.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/embeddedgo/fwtools/fwpack/internal/format"
	"github.com/embeddedgo/fwtools/fwpack/internal/layout"
	"github.com/embeddedgo/fwtools/fwpack/internal/pack"
	"github.com/embeddedgo/fwtools/fwpack/internal/util"
)

const cmd = "fwpack"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command and returns the process exit code. All
// diagnostics are written to stderr.
func run(args []string, stderr io.Writer) int {
	cfg, verbose, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return util.ExitOK
	}
	if err != nil {
		return util.UsageErr(stderr, cmd, err)
	}
	if cfg.Format == format.Bin && cfg.Options.Base != 0 {
		util.Warn(stderr, "%s: --base %#x ignored by the bin format", cmd, cfg.Options.Base)
	}
	logger := util.NewLogger(cmd, verbose, stderr)
	logger.Debug("layout", "layout", cfg.Layout.String())
	return util.Fail(stderr, cmd, pack.Pack(cfg, logger))
}

// number is a pflag.Value accepting decimal, octal (0o) and hexadecimal (0x)
// numbers.
type number struct {
	v    uint64
	bits int
}

func (n *number) String() string {
	if n.v == 0 {
		return "0"
	}
	return "0x" + strconv.FormatUint(n.v, 16)
}

func (n *number) Type() string { return "number" }

func (n *number) Set(s string) (err error) {
	n.v, err = strconv.ParseUint(s, 0, n.bits)
	return
}

// parseArgs converts the command line into a pack configuration.
func parseArgs(args []string, stderr io.Writer) (cfg *pack.Config, verbose bool, err error) {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(
			stderr,
			"Usage:\n  %s -a APP -b BOOT -o OUT [OPTIONS]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	cfg = new(pack.Config)
	fs.StringVarP(&cfg.Application, "application", "a", "", "application image `path` (required)")
	fs.StringVarP(&cfg.Bootloader, "bootloader", "b", "", "bootloader image `path` (required)")
	fs.StringVarP(&cfg.Output, "output", "o", "", "output image `path` (required)")
	layoutName := fs.StringP(
		"layout", "l", layout.Default,
		"flash layout `name`: "+strings.Join(layout.Names(), ", "),
	)
	appSize := &number{bits: 31}
	fs.Var(appSize, "app-size", "override the application region capacity")
	appLimit := fs.String("app-limit", "", "override the application size `limit`: atmost, below")
	bootOffset := &number{bits: 31}
	fs.Var(bootOffset, "boot-offset", "override the bootloader region offset")
	bootSize := &number{bits: 31}
	fs.Var(bootSize, "boot-size", "override the bootloader region capacity")
	bootLimit := fs.String("boot-limit", "", "override the bootloader size `limit`: atmost, exactly")
	pad := &number{v: 0xff, bits: 8}
	fs.Var(pad, "pad", "pad `byte` used to fill unused space")
	formatName := fs.StringP("format", "f", format.Bin.String(), "output `format`: bin, hex, uf2")
	base := &number{bits: 32}
	fs.Var(base, "base", "flash base `address` of the image (hex, uf2)")
	family := fs.String(
		"family", "",
		"UF2 family `ID` (32-bit number) or a known family name: "+
			strings.Join(format.FamilyNames(), ", "),
	)
	sparse := fs.Bool("sparse", false, "omit UF2 blocks that contain only the pad byte")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log the image layout to stderr")

	if err = fs.Parse(args); err != nil {
		return nil, false, err
	}
	if fs.NArg() != 0 {
		return nil, false, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	for _, name := range []string{"application", "bootloader", "output"} {
		if f := fs.Lookup(name); f.Value.String() == "" {
			return nil, false, fmt.Errorf("--%s (-%s) is required", f.Name, f.Shorthand)
		}
	}

	l, ok := layout.Lookup(*layoutName)
	if !ok {
		return nil, false, fmt.Errorf(
			"unknown layout %q (want %s)",
			*layoutName, strings.Join(layout.Names(), ", "),
		)
	}
	if fs.Changed("app-size") {
		l.AppCapacity = int(appSize.v)
	}
	if fs.Changed("boot-offset") {
		l.BootOffset = int(bootOffset.v)
	}
	if fs.Changed("boot-size") {
		l.BootCapacity = int(bootSize.v)
	}
	if fs.Changed("pad") {
		l.Pad = byte(pad.v)
	}
	if *appLimit != "" {
		if l.AppLimit, err = layout.ParseLimit(*appLimit); err != nil {
			return nil, false, err
		}
	}
	if *bootLimit != "" {
		if l.BootLimit, err = layout.ParseLimit(*bootLimit); err != nil {
			return nil, false, err
		}
	}
	if err = l.Validate(); err != nil {
		return nil, false, err
	}
	cfg.Layout = l

	if cfg.Format, err = format.ParseFormat(*formatName); err != nil {
		return nil, false, err
	}
	cfg.Options.Base = uint32(base.v)
	if *family != "" {
		if cfg.Format != format.UF2 {
			return nil, false, errors.New("--family requires --format uf2")
		}
		if cfg.Options.Family, err = format.LookupFamily(*family); err != nil {
			return nil, false, err
		}
	}
	if *sparse {
		if cfg.Format != format.UF2 {
			return nil, false, errors.New("--sparse requires --format uf2")
		}
		cfg.Options.Sparse = true
	}
	return cfg, verbose, nil
}
