// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"crypto/tls"
	"net"
	"time"
)

// DefaultMaxResponseSize is the default cap on the response body size.
//
// Responses larger than this are aborted to protect against rogue servers.
const DefaultMaxResponseSize = 100_000

// Config holds the configuration used by [NewConnection].
//
// All fields have sensible defaults set by [NewConfig]. Changing a
// field after [NewConnection] returns has no effect on that connection.
type Config struct {
	// Dialer is used by the transport handle to establish connections.
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// MaxResponseSize is the maximum number of body bytes we accept.
	//
	// Set by [NewConfig] to [DefaultMaxResponseSize].
	MaxResponseSize int

	// Recorder receives per-exchange measurements.
	//
	// Set by [NewConfig] to [DefaultRecorder].
	Recorder Recorder

	// TLSConfig is the optional TLS configuration for HTTPS exchanges.
	//
	// Set by [NewConfig] to nil, which selects the standard library defaults.
	TLSConfig *tls.Config

	// TLSEngine performs the TLS handshakes of HTTPS exchanges.
	//
	// Set by [NewConfig] to [TLSEngineStdlib].
	TLSEngine TLSEngine

	// Timeout bounds each exchange, including reading the body.
	//
	// Set by [NewConfig] to zero, meaning that only the caller's
	// context deadline applies.
	Timeout time.Duration

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:          &net.Dialer{},
		ErrClassifier:   DefaultErrClassifier,
		MaxResponseSize: DefaultMaxResponseSize,
		Recorder:        DefaultRecorder(),
		TLSConfig:       nil,
		TLSEngine:       TLSEngineStdlib{},
		Timeout:         0,
		TimeNow:         time.Now,
	}
}

// validate returns an InvalidArgument [*Error] when the config is unusable.
func (cfg *Config) validate() *Error {
	switch {
	case cfg == nil:
		return E(InvalidArgument, "config cannot be nil")
	case cfg.Dialer == nil:
		return E(InvalidArgument, "config dialer cannot be nil")
	case cfg.ErrClassifier == nil:
		return E(InvalidArgument, "config error classifier cannot be nil")
	case cfg.MaxResponseSize <= 0:
		return E(InvalidArgument, "config max response size must be positive")
	case cfg.Recorder == nil:
		return E(InvalidArgument, "config recorder cannot be nil")
	case cfg.TLSEngine == nil:
		return E(InvalidArgument, "config TLS engine cannot be nil")
	case cfg.Timeout < 0:
		return E(InvalidArgument, "config timeout cannot be negative")
	case cfg.TimeNow == nil:
		return E(InvalidArgument, "config time function cannot be nil")
	default:
		return nil
	}
}
