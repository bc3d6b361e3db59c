// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitCheck(t *testing.T) {
	tests := []struct {
		limit    Limit
		size     int
		capacity int
		want     bool
	}{
		{AtMost, 0x6fff, 0x7000, true},
		{AtMost, 0x7000, 0x7000, true},
		{AtMost, 0x7001, 0x7000, false},
		{Below, 0x6fff, 0x7000, true},
		{Below, 0x7000, 0x7000, false},
		{Exactly, 0x1000, 0x1000, true},
		{Exactly, 0x0fff, 0x1000, false},
		{Exactly, 0x1001, 0x1000, false},
		{Limit(7), 0, 1, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.limit.Check(tc.size, tc.capacity),
			"%s.Check(%#x, %#x)", tc.limit, tc.size, tc.capacity)
	}
}

func TestParseLimit(t *testing.T) {
	for _, l := range []Limit{AtMost, Below, Exactly} {
		got, err := ParseLimit(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	got, err := ParseLimit("EXACTLY")
	require.NoError(t, err)
	assert.Equal(t, Exactly, got)

	_, err = ParseLimit("roughly")
	assert.ErrorContains(t, err, "unknown size limit")
	assert.Equal(t, "Limit(9)", Limit(9).String())
}

func TestNamedLayouts(t *testing.T) {
	assert.Equal(t, []string{"padded", "strict"}, Names())

	for _, name := range Names() {
		l, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, l.Name)
		assert.NoError(t, l.Validate(), name)
		assert.Equal(t, 0x8000, l.Size(), name)
		assert.Equal(t, 0x7000, l.BootOffset, name)
		assert.Equal(t, byte(0xff), l.Pad, name)
	}

	padded, _ := Lookup("padded")
	assert.Equal(t, AtMost, padded.AppLimit)
	assert.Equal(t, AtMost, padded.BootLimit)

	strict, _ := Lookup("strict")
	assert.Equal(t, Below, strict.AppLimit)
	assert.Equal(t, Exactly, strict.BootLimit)

	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestLookupReturnsCopy(t *testing.T) {
	l, _ := Lookup(Default)
	l.AppCapacity = 1
	again, _ := Lookup(Default)
	assert.Equal(t, 0x7000, again.AppCapacity)
}

func TestValidate(t *testing.T) {
	base, _ := Lookup(Default)
	tests := []struct {
		name   string
		modify func(l *Layout)
		msg    string
	}{
		{"zero_app", func(l *Layout) { l.AppCapacity = 0 }, "application capacity"},
		{"zero_boot", func(l *Layout) { l.BootCapacity = 0 }, "bootloader capacity"},
		{"overlap", func(l *Layout) { l.BootOffset = 0x6fff }, "overlaps"},
		{"app_exact", func(l *Layout) { l.AppLimit = Exactly }, "application limit"},
		{"boot_below", func(l *Layout) { l.BootLimit = Below }, "bootloader limit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := base
			tc.modify(&l)
			err := l.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tc.msg)
		})
	}

	gap := base
	gap.BootOffset = 0x7800
	assert.NoError(t, gap.Validate())
	assert.Equal(t, 0x8800, gap.Size())
}
