// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import "context"

// Func is a generic operation that accepts an input and returns a result.
//
// Higher layers that need retry, authentication or request shaping wrap
// the Funcs returned by [*Connection.GetFunc] and [*Connection.PostFunc]
// instead of calling the [*Connection] directly. This package never
// retries on its own.
type Func[A, B any] interface {
	Call(ctx context.Context, input A) (B, error)
}

// FuncAdapter wraps a function as a [Func] implementation.
type FuncAdapter[A, B any] func(ctx context.Context, input A) (B, error)

// Call implements [Func].
func (f FuncAdapter[A, B]) Call(ctx context.Context, input A) (B, error) {
	return f(ctx, input)
}

// PostRequest is the input of the [Func] returned by [*Connection.PostFunc].
type PostRequest struct {
	// URL is the target URL.
	URL string

	// Body is the JSON body to send.
	Body string
}

// GetFunc returns a [Func] that calls [*Connection.Get] with its input URL.
func (c *Connection) GetFunc() Func[string, string] {
	return FuncAdapter[string, string](c.Get)
}

// PostFunc returns a [Func] that calls [*Connection.Post].
func (c *Connection) PostFunc() Func[PostRequest, string] {
	return FuncAdapter[PostRequest, string](func(ctx context.Context, req PostRequest) (string, error) {
		return c.Post(ctx, req.URL, req.Body)
	})
}
