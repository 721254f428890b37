// SPDX-License-Identifier: Unlicense OR MIT

// Package klog wraps zerolog.Logger for injection into the kernel's
// components (spec.md's ambient logging concern). A Logger is always
// passed explicitly -- never accessed through a package-level global --
// so tests can swap in a buffer and so embedders can route kernel logs
// into their own structured logging pipeline.
package klog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the structured logger threaded through kernel.Config into
// every subsystem that needs to report warnings (unhandled commands,
// dropped NaN input events, render timeouts, atlas exhaustion) without
// aborting.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing JSON lines to w. Passing nil uses os.Stderr.
func New(w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return Logger{z: zerolog.New(w).With().Timestamp().Logger()}
}

// Nop returns a Logger that discards everything, suitable as a zero-cost
// default for embedders that haven't wired logging.
func Nop() Logger {
	return Logger{z: zerolog.Nop()}
}

// With returns a Logger with an additional string field attached to every
// subsequent entry, used to tag a subsystem ("renderer", "markdown",
// "reactive") without repeating the field at every call site.
func (l Logger) With(key, value string) Logger {
	return Logger{z: l.z.With().Str(key, value).Logger()}
}

// Debug logs a low-frequency diagnostic message.
func (l Logger) Debug(msg string) {
	l.z.Debug().Msg(msg)
}

// Warn logs a recoverable condition: an unhandled command, a highlighter
// falling back to plain text, an atlas eviction under pressure.
func (l Logger) Warn(msg string) {
	l.z.Warn().Msg(msg)
}

// WarnErr logs a recoverable condition alongside the error that caused it.
func (l Logger) WarnErr(msg string, err error) {
	l.z.Warn().Err(err).Msg(msg)
}

// Error logs a condition serious enough to note even though the caller
// continues running (a render retry, a reparse failure recovered on the
// next debounce tick).
func (l Logger) Error(msg string, err error) {
	l.z.Error().Err(err).Msg(msg)
}

// Fatal logs and then terminates the process. Reserved for host-level
// failures (spec.md §4.K: platform init failure, repeated render
// failure) that the caller has already decided are unrecoverable;
// library code under kernel/ must never call this itself.
func (l Logger) Fatal(msg string, err error) {
	l.z.Fatal().Err(err).Msg(msg)
}
