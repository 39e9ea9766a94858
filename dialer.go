//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/connect.go
//

package sfsconn

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
)

// Dialer abstracts the [*net.Dialer] behavior.
//
// By making the transport handle depend on an abstract implementation
// we allow for unit testing and for using alternative dialers.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// loggingDialer wraps a [Dialer] and emits connectStart/connectDone events.
//
// When counters is not nil, dialed connections update it on I/O.
type loggingDialer struct {
	counters      *trafficCounters
	dialer        Dialer
	errClassifier ErrClassifier
	logger        SLogger
	timeNow       func() time.Time
}

var _ Dialer = &loggingDialer{}

// DialContext implements [Dialer].
func (d *loggingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	t0 := d.timeNow()
	deadline, _ := ctx.Deadline()
	d.logConnectStart(network, address, t0, deadline)
	conn, err := d.dialer.DialContext(ctx, network, address)
	d.logConnectDone(network, address, t0, deadline, conn, err)
	if err != nil {
		return nil, err
	}
	if d.counters != nil {
		conn = &countingConn{Conn: conn, counters: d.counters}
	}
	return conn, nil
}

func (d *loggingDialer) logConnectStart(network, address string, t0 time.Time, deadline time.Time) {
	d.logger.Debug(
		"connectStart",
		slog.Time("deadline", deadline),
		slog.String("protocol", network),
		slog.String("remoteAddr", address),
		slog.Time("t", t0),
	)
}

func (d *loggingDialer) logConnectDone(
	network, address string, t0 time.Time, deadline time.Time, conn net.Conn, err error) {
	d.logger.Debug(
		"connectDone",
		slog.Time("deadline", deadline),
		slog.Any("err", err),
		slog.String("errClass", d.errClassifier.Classify(err)),
		slog.String("localAddr", safeconn.LocalAddr(conn)),
		slog.String("protocol", network),
		slog.String("remoteAddr", address),
		slog.Time("t0", t0),
		slog.Time("t", d.timeNow()),
	)
}
