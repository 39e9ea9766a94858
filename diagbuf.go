// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"context"
	"sync"
)

// diagBufferSize is the capacity of a [*diagBuffer], in bytes.
const diagBufferSize = 256

// diagBuffer captures the first transport-internal error message of a
// transfer so that we can report it once the transfer has failed.
//
// The buffer has fixed capacity: longer messages are truncated. Only the
// first message is kept because it is the closest to the root cause.
type diagBuffer struct {
	mu  sync.Mutex
	buf [diagBufferSize]byte
	n   int
}

// write stores msg unless the buffer already holds a message.
func (db *diagBuffer) write(msg string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.n > 0 {
		return
	}
	db.n = copy(db.buf[:], msg)
}

// String returns the captured message or an empty string.
func (db *diagBuffer) String() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return string(db.buf[:db.n])
}

// diagBinding is the slot of a transport handle that may hold a bound
// [*diagBuffer]. The HTTP transport reports errors from its own goroutines,
// hence the mutexes.
type diagBinding struct {
	mu  sync.Mutex
	cur *diagBuffer
}

// bind attaches a fresh buffer and returns it with the function that
// detaches it. The caller must defer the detach function so that it runs
// on every exit path. Writes happening after detach are dropped.
func (b *diagBinding) bind() (*diagBuffer, func()) {
	db := &diagBuffer{}
	b.mu.Lock()
	b.cur = db
	b.mu.Unlock()
	return db, func() {
		b.mu.Lock()
		if b.cur == db {
			b.cur = nil
		}
		b.mu.Unlock()
	}
}

// record writes msg into db while db is still the bound buffer.
//
// Hooks firing late on a transport goroutine pass the buffer of their own
// transfer, so they cannot leak a message into a later transfer.
func (b *diagBinding) record(db *diagBuffer, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if db != nil && b.cur == db {
		db.write(msg)
	}
}

type diagBufferKey struct{}

// contextWithDiagBuffer returns a copy of ctx carrying db.
//
// The transport propagates the request context values to the dialers.
func contextWithDiagBuffer(ctx context.Context, db *diagBuffer) context.Context {
	return context.WithValue(ctx, diagBufferKey{}, db)
}

// diagBufferFromContext returns the buffer carried by ctx or nil.
func diagBufferFromContext(ctx context.Context) *diagBuffer {
	db, _ := ctx.Value(diagBufferKey{}).(*diagBuffer)
	return db
}
