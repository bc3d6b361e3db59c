// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Exit codes returned by Fail and UsageErr.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

func Warn(w io.Writer, f string, args ...any) {
	fmt.Fprintf(w, f+"\n", args...)
}

// Fail prints an error description to w and returns ExitFailure. It returns
// ExitOK if err == nil.
func Fail(w io.Writer, what string, err error) int {
	if err == nil {
		return ExitOK
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	io.WriteString(w, s)
	return ExitFailure
}

// UsageErr prints a command line error with a hint about the help option and
// returns ExitUsage.
func UsageErr(w io.Writer, cmd string, err error) int {
	Warn(w, "%s: %v\nTry '%s --help'.", cmd, err, cmd)
	return ExitUsage
}

// NewLogger returns a logger writing to w (os.Stderr if nil). Only warnings
// and errors are logged unless verbose is set.
func NewLogger(name string, verbose bool, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: w,
	})
}
