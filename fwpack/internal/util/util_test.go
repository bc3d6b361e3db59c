// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFail(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ExitOK, Fail(&buf, "pack", nil))
	assert.Empty(t, buf.String())

	assert.Equal(t, ExitFailure, Fail(&buf, "pack", errors.New("boom")))
	assert.Equal(t, "pack: boom\n", buf.String())

	buf.Reset()
	Fail(&buf, "", errors.New("boom"))
	assert.Equal(t, "boom\n", buf.String())
}

func TestUsageErrAndWarn(t *testing.T) {
	var buf bytes.Buffer
	Warn(&buf, "skipping %s", "x")
	assert.Equal(t, ExitUsage, UsageErr(&buf, "fwpack", errors.New("bad flag")))
	assert.Equal(t, "skipping x\nfwpack: bad flag\nTry 'fwpack --help'.\n", buf.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("fwpack", false, &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger("fwpack", true, &buf).Debug("shown", "offset", 0x7000)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "fwpack")
}
