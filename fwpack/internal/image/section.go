// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package image lays out binary sections in a flat flash image.
package image

import (
	"fmt"
	"sort"
)

type Section struct {
	Name string // used in error messages only
	Addr uint64 // offset of the section in the flash image
	Data []byte // section data
}

type Sections []*Section

// SortByAddr sorts sections according to the Addr field.
func (ss Sections) SortByAddr() {
	sort.SliceStable(
		ss,
		func(i, j int) bool {
			return ss[i].Addr < ss[j].Addr
		},
	)
}

// checkOverlap reports the first pair of overlapping sections. The sections
// must be sorted by Addr.
func (ss Sections) checkOverlap() error {
	for i := 1; i < len(ss); i++ {
		prev, s := ss[i-1], ss[i]
		if end := prev.Addr + uint64(len(prev.Data)); s.Addr < end {
			return fmt.Errorf(
				"overlapping sections: %s [%#x, %#x) and %s at %#x",
				prev.Name, prev.Addr, end, s.Name, s.Addr,
			)
		}
	}
	return nil
}

// Image returns the flash image of the given size with the sections copied
// at their addresses. All the bytes not covered by any section are set to
// pad. Image sorts the sections.
func (ss Sections) Image(size int, pad byte) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("image: negative size %d", size)
	}
	ss.SortByAddr()
	if err := ss.checkOverlap(); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = pad
	}
	for _, s := range ss {
		end := s.Addr + uint64(len(s.Data))
		if end > uint64(size) {
			return nil, fmt.Errorf(
				"image: section %s [%#x, %#x) exceeds the image size %#x",
				s.Name, s.Addr, end, size,
			)
		}
		copy(buf[s.Addr:end], s.Data)
	}
	return buf, nil
}
