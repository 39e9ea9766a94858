//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/tls.go
//

package sfsconn

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
)

// TLSEngine is the engine to create a new [TLSConn].
type TLSEngine interface {
	// Client builds a new client [TLSConn].
	Client(conn net.Conn, config *tls.Config) TLSConn

	// Name returns the engine name.
	Name() string
}

// TLSEngineStdlib implements [TLSEngine] for the standard library.
//
// The zero value is ready to use. Because it returns a [*tls.Conn], the
// transport can negotiate HTTP/2 using ALPN.
type TLSEngineStdlib struct{}

var _ TLSEngine = TLSEngineStdlib{}

// Client implements [TLSEngine].
func (TLSEngineStdlib) Client(conn net.Conn, config *tls.Config) TLSConn {
	return tls.Client(conn, config)
}

// Name implements [TLSEngine].
//
// This function returns "stdlib".
func (TLSEngineStdlib) Name() string {
	return "stdlib"
}

// TLSConn abstracts over [*tls.Conn].
type TLSConn interface {
	// ConnectionState returns the connection state.
	ConnectionState() tls.ConnectionState

	// HandshakeContext performs the handshake unless interrupted by the context.
	HandshakeContext(ctx context.Context) error

	net.Conn
}

// tlsDialer dials TCP using a [*loggingDialer] and then performs the TLS
// handshake, emitting tlsHandshakeStart/tlsHandshakeDone events.
//
// Handshake errors are recorded into the diagnostic buffer carried by the
// dial context, if that buffer is still bound.
type tlsDialer struct {
	config        *tls.Config
	diag          *diagBinding
	dialer        *loggingDialer
	engine        TLSEngine
	errClassifier ErrClassifier
	logger        SLogger
	timeNow       func() time.Time
}

// DialTLSContext has the signature of [http.Transport.DialTLSContext].
func (d *tlsDialer) DialTLSContext(ctx context.Context, network, address string) (net.Conn, error) {
	conn, err := d.dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	config := d.tlsConfig(address)
	tconn := d.engine.Client(conn, config)
	t0 := d.timeNow()
	deadline, _ := ctx.Deadline()
	d.logHandshakeStart(conn, t0, deadline, config)
	err = tconn.HandshakeContext(ctx)
	state := tconn.ConnectionState()
	d.logHandshakeDone(conn, t0, deadline, config, err, state)

	if err != nil {
		d.diag.record(diagBufferFromContext(ctx), err.Error())
		tconn.Close()
		return nil, err
	}
	return tconn, nil
}

// tlsConfig clones the configured [*tls.Config] and sets the server name
// from the address when the configuration does not set one.
func (d *tlsDialer) tlsConfig(address string) *tls.Config {
	config := d.config.Clone()
	if config.ServerName == "" {
		if host, _, err := net.SplitHostPort(address); err == nil {
			config.ServerName = host
		}
	}
	config.Time = d.timeNow
	return config
}

func (d *tlsDialer) logHandshakeStart(conn net.Conn, t0, deadline time.Time, config *tls.Config) {
	d.logger.Debug(
		"tlsHandshakeStart",
		slog.Time("deadline", deadline),
		slog.String("localAddr", safeconn.LocalAddr(conn)),
		slog.String("protocol", safeconn.Network(conn)),
		slog.String("remoteAddr", safeconn.RemoteAddr(conn)),
		slog.Time("t", t0),
		slog.String("tlsEngineName", d.engine.Name()),
		slog.Any("tlsOfferedProtocols", config.NextProtos),
		slog.String("tlsServerName", config.ServerName),
		slog.Bool("tlsSkipVerify", config.InsecureSkipVerify),
	)
}

func (d *tlsDialer) logHandshakeDone(conn net.Conn,
	t0, deadline time.Time, config *tls.Config, err error, state tls.ConnectionState) {
	d.logger.Debug(
		"tlsHandshakeDone",
		slog.Time("deadline", deadline),
		slog.Any("err", err),
		slog.String("errClass", d.errClassifier.Classify(err)),
		slog.String("localAddr", safeconn.LocalAddr(conn)),
		slog.String("protocol", safeconn.Network(conn)),
		slog.String("remoteAddr", safeconn.RemoteAddr(conn)),
		slog.Time("t0", t0),
		slog.Time("t", d.timeNow()),
		slog.String("tlsCipherSuite", tls.CipherSuiteName(state.CipherSuite)),
		slog.String("tlsEngineName", d.engine.Name()),
		slog.String("tlsNegotiatedProtocol", state.NegotiatedProtocol),
		slog.Any("tlsOfferedProtocols", config.NextProtos),
		slog.String("tlsServerName", config.ServerName),
		slog.Bool("tlsSkipVerify", config.InsecureSkipVerify),
		slog.String("tlsVersion", tls.VersionName(state.Version)),
	)
}
