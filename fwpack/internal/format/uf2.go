// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
)

const uf2FamilyIDPresent = 0x00002000

const (
	uf2Magic0 = 0x0a324655
	uf2Magic1 = 0x9e5d5157
	uf2Magic2 = 0x0ab16f30
)

var uf2FamilyMap = map[string]uint32{
	"samd21":        0x68ed2b88,
	"samd51":        0x55114460,
	"stm32f0":       0x647824b6,
	"stm32f1":       0x5ee21072,
	"stm32l0":       0x202e3a91,
	"nrf52":         0x1b57745f,
	"rp2040":        0xe48bff56,
	"absolute":      0xe48bff57,
	"data":          0xe48bff58,
	"rp2350_arm_s":  0xe48bff59,
	"rp2350_riscv":  0xe48bff5a,
	"rp2350_arm_ns": 0xe48bff5b,
}

// FamilyNames returns the sorted names of the known UF2 families.
func FamilyNames() []string {
	return slices.Sorted(maps.Keys(uf2FamilyMap))
}

// LookupFamily returns the UF2 family ID for a known family name or parses
// s as a 32-bit number.
func LookupFamily(s string) (uint32, error) {
	if id, ok := uf2FamilyMap[s]; ok {
		return id, nil
	}
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("uf2: bad family ID: %q", s)
	}
	return uint32(u), nil
}

type uf2block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32
	Len    uint32
	Seq    uint32
	Total  uint32
	Family uint32
	Data   [uf2PayloadSize]byte
	_      [476 - uf2PayloadSize]byte
	Magic2 uint32
}

const uf2PayloadSize = 256

// encodeUF2 writes img as a sequence of 512-byte UF2 blocks, each carrying
// 256 bytes of the image, the first one at o.Base. The last payload is
// filled up with o.Pad. If o.Sparse is set the payloads that contain only
// o.Pad bytes are omitted, so the corresponding flash pages keep their
// previous content after programming.
func encodeUF2(w io.Writer, img []byte, o Options) error {
	var offs []int
	for off := 0; off < len(img); off += uf2PayloadSize {
		if o.Sparse && onlyPad(img[off:min(off+uf2PayloadSize, len(img))], o.Pad) {
			continue
		}
		offs = append(offs, off)
	}
	b := &uf2block{
		Magic0: uf2Magic0,
		Magic1: uf2Magic1,
		Len:    uf2PayloadSize,
		Total:  uint32(len(offs)),
		Family: o.Family,
		Magic2: uf2Magic2,
	}
	if o.Family != 0 {
		b.Flags |= uf2FamilyIDPresent
	}
	for seq, off := range offs {
		b.Seq = uint32(seq)
		b.Addr = o.Base + uint32(off)
		n := copy(b.Data[:], img[off:])
		for i := n; i < len(b.Data); i++ {
			b.Data[i] = o.Pad
		}
		if err := binary.Write(w, binary.LittleEndian, b); err != nil {
			return err
		}
	}
	return nil
}

func onlyPad(p []byte, pad byte) bool {
	for _, c := range p {
		if c != pad {
			return false
		}
	}
	return true
}
