// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout describes how the application and the bootloader are placed
// in the flash image.
package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Limit is the policy used to compare the size of an input file with the
// capacity of its region.
type Limit int

const (
	AtMost  Limit = iota // size <= capacity
	Below                // size < capacity
	Exactly              // size == capacity
)

var limitNames = [...]string{
	AtMost:  "atmost",
	Below:   "below",
	Exactly: "exactly",
}

func (l Limit) String() string {
	if l < 0 || int(l) >= len(limitNames) {
		return fmt.Sprintf("Limit(%d)", int(l))
	}
	return limitNames[l]
}

// Op returns the comparison operator corresponding to l.
func (l Limit) Op() string {
	switch l {
	case AtMost:
		return "<="
	case Below:
		return "<"
	case Exactly:
		return "=="
	}
	return "?"
}

// Check reports whether the size satisfies the limit for the given capacity.
func (l Limit) Check(size, capacity int) bool {
	switch l {
	case AtMost:
		return size <= capacity
	case Below:
		return size < capacity
	case Exactly:
		return size == capacity
	}
	return false
}

// ParseLimit returns the limit with the given name.
func ParseLimit(s string) (Limit, error) {
	i := slices.Index(limitNames[:], strings.ToLower(s))
	if i < 0 {
		return 0, fmt.Errorf("unknown size limit %q (want %s)", s, strings.Join(limitNames[:], ", "))
	}
	return Limit(i), nil
}

// Layout defines two non-overlapping regions of the flash image. The
// application region starts at offset 0, the bootloader region starts at
// BootOffset. The image is BootOffset+BootCapacity bytes long.
type Layout struct {
	Name         string
	AppCapacity  int
	AppLimit     Limit
	BootOffset   int
	BootCapacity int
	BootLimit    Limit
	Pad          byte
}

// Size returns the total size of the image.
func (l *Layout) Size() int {
	return l.BootOffset + l.BootCapacity
}

var ErrInvalid = errors.New("invalid layout")

// Validate checks the consistency of the layout.
func (l *Layout) Validate() error {
	switch {
	case l.AppCapacity <= 0:
		return fmt.Errorf("%w: application capacity %d", ErrInvalid, l.AppCapacity)
	case l.BootCapacity <= 0:
		return fmt.Errorf("%w: bootloader capacity %d", ErrInvalid, l.BootCapacity)
	case l.BootOffset < l.AppCapacity:
		return fmt.Errorf(
			"%w: bootloader offset %#x overlaps the application region [0, %#x)",
			ErrInvalid, l.BootOffset, l.AppCapacity,
		)
	case l.AppLimit == Exactly:
		return fmt.Errorf("%w: application limit %s", ErrInvalid, l.AppLimit)
	case l.BootLimit != AtMost && l.BootLimit != Exactly:
		return fmt.Errorf("%w: bootloader limit %s", ErrInvalid, l.BootLimit)
	}
	return nil
}

func (l *Layout) String() string {
	return fmt.Sprintf(
		"%s: app [0, %#x) size %s %#x, boot [%#x, %#x) size %s %#x, pad %#02x",
		l.Name, l.AppCapacity, l.AppLimit.Op(), l.AppCapacity,
		l.BootOffset, l.Size(), l.BootLimit.Op(), l.BootCapacity, l.Pad,
	)
}

const (
	appCapacity  = 0x7000
	bootOffset   = 0x7000
	bootCapacity = 0x1000
)

var layouts = map[string]Layout{
	// The bootloader may be shorter than its region and is padded.
	"padded": {
		AppCapacity:  appCapacity,
		AppLimit:     AtMost,
		BootOffset:   bootOffset,
		BootCapacity: bootCapacity,
		BootLimit:    AtMost,
		Pad:          0xff,
	},
	// The bootloader must fill its region. The application must leave at
	// least one byte of its region unused.
	"strict": {
		AppCapacity:  appCapacity,
		AppLimit:     Below,
		BootOffset:   bootOffset,
		BootCapacity: bootCapacity,
		BootLimit:    Exactly,
		Pad:          0xff,
	},
}

const Default = "padded"

// Lookup returns a copy of the named layout.
func Lookup(name string) (Layout, bool) {
	l, ok := layouts[name]
	l.Name = name
	return l, ok
}

// Names returns the sorted names of the known layouts.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
