//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/observeconn.go
//

package sfsconn

import (
	"net"
	"sync/atomic"
)

// trafficCounters accumulates the bytes moved by the connections
// dialed for the current exchange.
//
// Counters are updated from the transport goroutines.
type trafficCounters struct {
	read    atomic.Int64
	written atomic.Int64
}

// reset zeroes the counters before a new exchange.
func (tc *trafficCounters) reset() {
	tc.read.Store(0)
	tc.written.Store(0)
}

// bytesRead returns the bytes read so far, including TLS overhead.
func (tc *trafficCounters) bytesRead() int64 {
	return tc.read.Load()
}

// bytesWritten returns the bytes written so far, including TLS overhead.
func (tc *trafficCounters) bytesWritten() int64 {
	return tc.written.Load()
}

// countingConn wraps a [net.Conn] and updates [*trafficCounters] on I/O.
type countingConn struct {
	net.Conn
	counters *trafficCounters
}

// Read implements [net.Conn].
func (c *countingConn) Read(buf []byte) (int, error) {
	count, err := c.Conn.Read(buf)
	c.counters.read.Add(int64(count))
	return count, err
}

// Write implements [net.Conn].
func (c *countingConn) Write(data []byte) (int, error) {
	count, err := c.Conn.Write(data)
	c.counters.written.Add(int64(count))
	return count, err
}
