// SPDX-License-Identifier: Unlicense OR MIT

package klog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWarnWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Warn("atlas eviction under pressure")
	if !strings.Contains(buf.String(), "atlas eviction under pressure") {
		t.Errorf("log output missing message: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("log output missing level field: %s", buf.String())
	}
}

func TestWithAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).With("subsystem", "markdown")
	l.Debug("reparse scheduled")
	if !strings.Contains(buf.String(), `"subsystem":"markdown"`) {
		t.Errorf("log output missing subsystem field: %s", buf.String())
	}
}

func TestWarnErrIncludesError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.WarnErr("command dispatch failed", errors.New("no handler"))
	if !strings.Contains(buf.String(), "no handler") {
		t.Errorf("log output missing wrapped error: %s", buf.String())
	}
}

func TestNopDiscardsOutput(t *testing.T) {
	l := Nop()
	l.Warn("should not panic or write anywhere")
}
