// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pack

import (
	"errors"
	"fmt"

	"github.com/embeddedgo/fwtools/fwpack/internal/layout"
)

var (
	ErrInputNotFound       = errors.New("input not found")
	ErrApplicationTooLarge = errors.New("application too large")
	ErrBootloaderSize      = errors.New("bootloader size violation")
	ErrWrite               = errors.New("write failure")
)

// Role identifies the input file.
type Role string

const (
	Application Role = "application"
	Bootloader  Role = "bootloader"
)

// InputError indicates that an input path doesn't reference an existing
// regular file. It is also returned for files that exist but cannot be
// opened or read (permission denied, I/O error); Err holds the underlying
// error in all cases, so errors.Is(err, fs.ErrPermission) tells them apart.
type InputError struct {
	Role Role
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Role, e.Path, e.Err)
}

func (e *InputError) Unwrap() []error {
	return []error{ErrInputNotFound, e.Err}
}

// SizeError indicates that the size of an input file violates the limit of
// its region.
type SizeError struct {
	Role     Role
	Path     string
	Size     int64
	Capacity int
	Limit    layout.Limit
}

func (e *SizeError) Error() string {
	return fmt.Sprintf(
		"%s %s: size %d (%#x) bytes, want size %s %d (%#x) bytes",
		e.Role, e.Path, e.Size, e.Size, e.Limit.Op(), e.Capacity, e.Capacity,
	)
}

func (e *SizeError) Unwrap() error {
	if e.Role == Application {
		return ErrApplicationTooLarge
	}
	return ErrBootloaderSize
}

// WriteError indicates that the output file cannot be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}
