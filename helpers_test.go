// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"sync"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
	"github.com/bassosimone/tlsstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
//
// The handler is safe for concurrent use because the HTTP transport may
// log from its own goroutines.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var (
		mu      sync.Mutex
		records []slog.Record
	)
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			mu.Lock()
			records = append(records, record)
			mu.Unlock()
			return nil
		},
	}
	return slog.New(handler), &records
}

// recordAttrs flattens the attributes of a record into strings.
func recordAttrs(record slog.Record) map[string]string {
	out := make(map[string]string)
	record.Attrs(func(attr slog.Attr) bool {
		out[attr.Key] = attr.Value.String()
		return true
	})
	return out
}

// recordsNamed returns the records whose message equals msg.
func recordsNamed(records []slog.Record, msg string) []slog.Record {
	var out []slog.Record
	for _, record := range records {
		if record.Message == msg {
			out = append(out, record)
		}
	}
	return out
}

// newMinimalConn returns a [*netstub.FuncConn] with only LocalAddrFunc and
// RemoteAddrFunc set, which is what [safeconn] needs for logging.
func newMinimalConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.TCPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.TCPAddr{} },
	}
}

// bound returns whether a buffer is currently attached.
func (b *diagBinding) bound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cur != nil
}

// newStubTLSEngine returns a [*tlsstub.FuncTLSEngine] whose ClientFunc
// returns the given [TLSConn] and whose NameFunc returns "stub".
func newStubTLSEngine(conn TLSConn) *tlsstub.FuncTLSEngine[TLSConn] {
	return &tlsstub.FuncTLSEngine[TLSConn]{
		ClientFunc: func(c net.Conn, config *tls.Config) TLSConn {
			return conn
		},
		NameFunc: func() string {
			return "stub"
		},
	}
}
