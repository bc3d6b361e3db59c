// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pack combines an application and a bootloader into a single flash
// image.
//
// The application is placed at offset 0 and the bootloader at the
// bootloader offset of the layout. All other bytes of the image are set to
// the pad byte of the layout. The output file is written only if both inputs
// satisfy the size limits of their regions and is replaced atomically, so a
// failed run never leaves a truncated image behind. An output path that is a
// symbolic link is followed, and an existing output keeps its permissions.
package pack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/embeddedgo/fwtools/fwpack/internal/format"
	"github.com/embeddedgo/fwtools/fwpack/internal/image"
	"github.com/embeddedgo/fwtools/fwpack/internal/layout"
)

// Config describes a single pack operation.
type Config struct {
	Application string // path to the application image
	Bootloader  string // path to the bootloader image
	Output      string // path to the output file, replaced if exists
	Layout      layout.Layout
	Format      format.Format
	Options     format.Options // used by the Hex and UF2 formats
}

type input struct {
	role     Role
	path     string
	capacity int
	limit    layout.Limit
}

func inputs(cfg *Config) [2]input {
	l := &cfg.Layout
	return [2]input{
		{Application, cfg.Application, l.AppCapacity, l.AppLimit},
		{Bootloader, cfg.Bootloader, l.BootCapacity, l.BootLimit},
	}
}

func (in *input) checkSize(size int64) error {
	if size > int64(in.capacity)+1 || !in.limit.Check(int(size), in.capacity) {
		return &SizeError{in.role, in.path, size, in.capacity, in.limit}
	}
	return nil
}

// stat checks that the input is an existing regular file of acceptable size.
func (in *input) stat() error {
	fi, err := os.Stat(in.path)
	if err != nil {
		return &InputError{in.role, in.path, err}
	}
	if !fi.Mode().IsRegular() {
		return &InputError{in.role, in.path, errors.New("not a regular file")}
	}
	return in.checkSize(fi.Size())
}

// read reads the input. At most capacity+1 bytes are read, enough to detect
// a file that has grown since stat.
func (in *input) read() ([]byte, error) {
	f, err := os.Open(in.path)
	if err != nil {
		return nil, &InputError{in.role, in.path, err}
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(in.capacity)+1))
	if err != nil {
		return nil, &InputError{in.role, in.path, err}
	}
	if err := in.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}

// Pack reads the application and the bootloader, checks their sizes, lays
// them out according to cfg.Layout and writes the result to cfg.Output in
// cfg.Format. No input is read and no output is created unless both inputs
// pass the size checks.
func Pack(cfg *Config, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := cfg.Layout.Validate(); err != nil {
		return err
	}
	ins := inputs(cfg)
	for i := range ins {
		if err := ins[i].stat(); err != nil {
			return err
		}
	}
	var data [len(ins)][]byte
	for i := range ins {
		var err error
		if data[i], err = ins[i].read(); err != nil {
			return err
		}
	}
	img, err := assemble(data[0], data[1], &cfg.Layout, logger)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.Grow(len(img))
	opts := cfg.Options
	opts.Pad = cfg.Layout.Pad
	if err := format.Encode(&buf, cfg.Format, img, opts); err != nil {
		return err
	}
	if err := writeFile(cfg.Output, buf.Bytes()); err != nil {
		return err
	}
	logger.Debug("image written",
		"output", cfg.Output,
		"format", cfg.Format,
		"image_size", len(img),
		"file_size", buf.Len())
	return nil
}

// Assemble checks the sizes of app and boot against the layout and returns
// the flash image.
func Assemble(app, boot []byte, l layout.Layout) ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	cfg := &Config{Layout: l}
	ins := inputs(cfg)
	for i, data := range [...][]byte{app, boot} {
		if err := ins[i].checkSize(int64(len(data))); err != nil {
			return nil, err
		}
	}
	return assemble(app, boot, &l, hclog.NewNullLogger())
}

func assemble(app, boot []byte, l *layout.Layout, logger hclog.Logger) ([]byte, error) {
	ss := image.Sections{
		{Name: string(Application), Addr: 0, Data: app},
		{Name: string(Bootloader), Addr: uint64(l.BootOffset), Data: boot},
	}
	for _, s := range ss {
		logger.Debug("placing region",
			"region", s.Name,
			"offset", fmt.Sprintf("%#x", s.Addr),
			"size", len(s.Data))
	}
	logger.Debug("padding",
		"application", l.AppCapacity-len(app),
		"gap", l.BootOffset-l.AppCapacity,
		"bootloader", l.BootCapacity-len(boot),
		"pad", fmt.Sprintf("%#02x", l.Pad))
	return ss.Image(l.Size(), l.Pad)
}

// writeFile writes data to a temporary file in the directory of name and
// renames it to name. If name is a symbolic link the file it points to is
// replaced. The permissions of an existing file are preserved.
func writeFile(name string, data []byte) error {
	target := name
	if p, err := filepath.EvalSymlinks(name); err == nil {
		target = p
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(target); err == nil {
		perm = fi.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return &WriteError{name, err}
	}
	tmp := f.Name()
	err = func() error {
		if _, err := f.Write(data); err != nil {
			f.Close()
			return err
		}
		if err := f.Chmod(perm); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		return os.Rename(tmp, target)
	}()
	if err != nil {
		os.Remove(tmp)
		return &WriteError{name, err}
	}
	return nil
}
