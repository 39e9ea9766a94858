//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/compose.go
//

package sfsconn

import (
	"context"
	"encoding/json"
	"fmt"
)

// Compose2 chains two [Func] instances together into a pipeline.
//
// The output of op1 becomes the input to op2. If op1 returns an error,
// op2 is not called and the error is returned immediately.
func Compose2[A, B, C any](op1 Func[A, B], op2 Func[B, C]) Func[A, C] {
	return &compose2[A, B, C]{op1, op2}
}

type compose2[A, B, C any] struct {
	op1 Func[A, B]
	op2 Func[B, C]
}

func (c *compose2[A, B, C]) Call(ctx context.Context, input A) (C, error) {
	res, err := c.op1.Call(ctx, input)
	if err != nil {
		var zero C
		return zero, err
	}
	return c.op2.Call(ctx, res)
}

// Compose3 chains three [Func] instances together.
func Compose3[A, B, C, D any](op1 Func[A, B], op2 Func[B, C], op3 Func[C, D]) Func[A, D] {
	return Compose2(op1, Compose2(op2, op3))
}

// DecodeJSONFunc returns a [Func] parsing a response body into a T.
//
// A malformed body yields an [*Error] with code [ConnectionUnexpectedError].
//
//	getApp := Compose2(conn.GetFunc(), DecodeJSONFunc[AppInfo]())
func DecodeJSONFunc[T any]() Func[string, T] {
	return FuncAdapter[string, T](func(ctx context.Context, body string) (T, error) {
		var value T
		if err := json.Unmarshal([]byte(body), &value); err != nil {
			var zero T
			return zero, E(ConnectionUnexpectedError, fmt.Sprintf("cannot parse response body: %s", err.Error()), WithCauseOption(err))
		}
		return value, nil
	})
}
