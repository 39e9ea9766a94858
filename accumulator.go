// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import "io"

// accumulator collects the response body as it arrives.
//
// The length never exceeds limit: a [Write] that would overflow it is
// rejected with [ErrResponseTooLarge] and nothing is appended.
type accumulator struct {
	buf   []byte
	limit int
}

var _ io.Writer = &accumulator{}

// newAccumulator returns an empty accumulator capped at limit bytes.
func newAccumulator(limit int) *accumulator {
	return &accumulator{limit: limit}
}

// Write implements [io.Writer].
func (a *accumulator) Write(data []byte) (int, error) {
	if len(a.buf)+len(data) > a.limit {
		return 0, ErrResponseTooLarge
	}
	a.buf = append(a.buf, data...)
	return len(data), nil
}

// reset discards the accumulated bytes.
func (a *accumulator) reset() {
	a.buf = a.buf[:0]
}

// len returns the number of accumulated bytes.
func (a *accumulator) len() int {
	return len(a.buf)
}

// String returns the accumulated bytes as a string.
func (a *accumulator) String() string {
	return string(a.buf)
}
