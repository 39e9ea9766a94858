// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import "time"

// Recorder receives one measurement per completed GET or POST exchange.
//
// The code is empty on success. The size is the number of body bytes
// returned to the caller, which is zero on failure.
//
// See the prommetrics package for a Prometheus implementation.
type Recorder interface {
	RecordExchange(method string, code Code, elapsed time.Duration, size int)
}

// RecorderFunc adapts a function to the [Recorder] interface.
type RecorderFunc func(method string, code Code, elapsed time.Duration, size int)

var _ Recorder = RecorderFunc(nil)

// RecordExchange implements [Recorder].
func (f RecorderFunc) RecordExchange(method string, code Code, elapsed time.Duration, size int) {
	f(method, code, elapsed, size)
}

// DefaultRecorder returns a [Recorder] that discards all measurements.
func DefaultRecorder() Recorder {
	return RecorderFunc(func(string, Code, time.Duration, int) {})
}
