// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format encodes a flat flash image for the output file.
package format

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/marcinbor85/gohex"
)

type Format int

const (
	Bin Format = iota // raw binary
	Hex               // Intel HEX
	UF2               // USB Flashing Format
)

var formatNames = [...]string{
	Bin: "bin",
	Hex: "hex",
	UF2: "uf2",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	i := slices.Index(formatNames[:], strings.ToLower(s))
	if i < 0 {
		return 0, fmt.Errorf(
			"unknown output format %q (want %s)",
			s, strings.Join(formatNames[:], ", "),
		)
	}
	return Format(i), nil
}

// Options contains the parameters used by the Hex and UF2 formats.
type Options struct {
	Base   uint32 // flash address of the first byte of the image
	Family uint32 // UF2 family ID, 0 means no family ID
	Pad    byte   // value of the unused bytes of the image
	Sparse bool   // UF2: omit blocks that contain only Pad bytes
}

const hexLineLen = 16

// Encode writes img to w in the format f.
func Encode(w io.Writer, f Format, img []byte, o Options) error {
	if uint64(o.Base)+uint64(len(img)) > 1<<32 {
		return fmt.Errorf(
			"%s: image [%#x, %#x) doesn't fit in 32-bit address space",
			f, o.Base, uint64(o.Base)+uint64(len(img)),
		)
	}
	switch f {
	case Bin:
		_, err := w.Write(img)
		return err
	case Hex:
		mem := gohex.NewMemory()
		if err := mem.AddBinary(o.Base, img); err != nil {
			return fmt.Errorf("hex: %w", err)
		}
		if err := mem.DumpIntelHex(w, hexLineLen); err != nil {
			return fmt.Errorf("hex: %w", err)
		}
		return nil
	case UF2:
		if err := encodeUF2(w, img, o); err != nil {
			return fmt.Errorf("uf2: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %s", f)
}
