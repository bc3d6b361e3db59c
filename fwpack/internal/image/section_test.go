// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fill(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestImage(t *testing.T) {
	ss := Sections{
		{Name: "boot", Addr: 12, Data: fill(4, 0xcd)},
		{Name: "app", Addr: 0, Data: fill(3, 0xab)},
	}
	got, err := ss.Image(16, 0xff)
	if err != nil {
		t.Fatal(err)
	}
	want := append(fill(3, 0xab), fill(9, 0xff)...)
	want = append(want, fill(4, 0xcd)...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
	if ss[0].Name != "app" {
		t.Errorf("sections not sorted: first is %s", ss[0].Name)
	}
}

func TestImageEmpty(t *testing.T) {
	got, err := Sections(nil).Image(8, 0x5a)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fill(8, 0x5a), got); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
}

func TestImageErrors(t *testing.T) {
	tests := []struct {
		name string
		ss   Sections
		size int
		msg  string
	}{
		{
			name: "overlap",
			ss: Sections{
				{Name: "a", Addr: 0, Data: fill(5, 1)},
				{Name: "b", Addr: 4, Data: fill(2, 2)},
			},
			size: 16,
			msg:  "overlapping",
		},
		{
			name: "too_long",
			ss:   Sections{{Name: "a", Addr: 10, Data: fill(7, 1)}},
			size: 16,
			msg:  "exceeds the image size",
		},
		{
			name: "negative",
			size: -1,
			msg:  "negative size",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.ss.Image(tc.size, 0xff)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q should contain %q", err, tc.msg)
			}
		})
	}
}
