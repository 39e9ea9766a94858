// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying a span.
//
// In this package a span is a single GET or POST exchange. Attach the
// ID to the logger (e.g., logger.With("spanID", id)) so that the connect,
// exchange and body events of one exchange can be correlated.
//
// This function panics if the system random number generator fails.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
