// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

// SLogger abstracts the [*slog.Logger] behavior.
//
// This is the diagnostics collaborator: the package emits structured
// events through it and never writes to stdout/stderr on its own.
//
// This package uses three log levels:
//   - Debug for per-connection and per-body events (connect, gotConn,
//     body stream start/done)
//   - Info for exchange span events (httpExchangeStart, httpExchangeDone)
//   - Warn for every failure, emitted where the failure is detected
//
// The [*slog.Logger] type satisfies this interface.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// DefaultSLogger returns the default [SLogger] to use.
//
// The default is a no-op logger that discards all output.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

// discardSLogger is a no-op [SLogger] that discards all log messages.
type discardSLogger struct{}

var _ SLogger = discardSLogger{}

// Debug implements [SLogger].
func (discardSLogger) Debug(msg string, args ...any) {
	// nothing
}

// Info implements [SLogger].
func (discardSLogger) Info(msg string, args ...any) {
	// nothing
}

// Warn implements [SLogger].
func (discardSLogger) Warn(msg string, args ...any) {
	// nothing
}
