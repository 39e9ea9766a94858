//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/httpbody.go
//

package sfsconn

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptrace"

	"github.com/bassosimone/safeconn"
)

// perform runs a single transfer and translates its outcome.
//
// On success it returns the accumulated body and the status code. On
// failure the body is always empty: partial bodies are discarded.
func (c *Connection) perform(ctx context.Context,
	method, url string, body io.Reader, headers *headerList) (string, int, error) {
	// 1. Refuse to use a released handle
	if c.handle.closed.Load() {
		return "", 0, c.fail(E(ConnectionSetupFailed, "connection is closed", WithCauseOption(net.ErrClosed)))
	}

	// 2. Bind the URL and the headers to a new request
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return "", 0, c.fail(E(ConnectionSetupFailed, "failed to set the request URL: "+err.Error(), WithCauseOption(err)))
	}
	headers.apply(req.Header)

	// 3. Bind the diagnostic buffer for the duration of the transfer
	diag, unbind := c.handle.diag.bind()
	defer unbind()
	rctx := contextWithDiagBuffer(req.Context(), diag)
	req = req.WithContext(httptrace.WithClientTrace(rctx, c.newClientTrace(diag)))

	// 4. Reset the accumulator and perform the blocking transfer
	c.acc.reset()
	status, err := c.transfer(req, diag)

	// 5. Translate transport failures, discarding any partial body
	if err != nil {
		c.handle.diag.record(diag, err.Error())
		return "", 0, c.fail(transportErrorToResult(err, diag.String(), c.ErrClassifier))
	}

	// 6. Translate the HTTP status code
	if status <= 0 {
		return "", status, c.fail(E(ConnectionUnexpectedError, fmt.Sprintf("failed to read the HTTP status code (got %d)", status)))
	}
	if err := httpStatusToResult(status); err != nil {
		return "", status, c.fail(err)
	}
	return c.acc.String(), status, nil
}

// transfer sends the request and streams the response body into the
// accumulator, returning the status code.
func (c *Connection) transfer(req *http.Request, diag *diagBuffer) (int, error) {
	resp, err := c.handle.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := c.accumulateBody(resp.Body); err != nil {
		if errors.Is(err, ErrResponseTooLarge) {
			c.handle.diag.record(diag, fmt.Sprintf("response body exceeds %d bytes", c.acc.limit))
		}
		return 0, err
	}
	return resp.StatusCode, nil
}

// accumulateBody copies body into the accumulator, emitting the
// httpBodyStreamStart and httpBodyStreamDone events.
func (c *Connection) accumulateBody(body io.Reader) error {
	t0 := c.TimeNow()
	c.Logger.Debug(
		"httpBodyStreamStart",
		slog.Int("maxBodySize", c.acc.limit),
		slog.Time("t", t0),
	)

	_, err := io.Copy(c.acc, body)

	c.Logger.Debug(
		"httpBodyStreamDone",
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.Int("bodySize", c.acc.len()),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)
	return err
}

// newClientTrace returns the trace hooks feeding diag.
//
// The transport may invoke these hooks from its own goroutines, possibly
// after the transfer is over, in which case the writes are dropped.
func (c *Connection) newClientTrace(diag *diagBuffer) *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			c.Logger.Debug(
				"httpGotConn",
				slog.String("localAddr", safeconn.LocalAddr(info.Conn)),
				slog.String("protocol", safeconn.Network(info.Conn)),
				slog.String("remoteAddr", safeconn.RemoteAddr(info.Conn)),
				slog.Bool("reused", info.Reused),
				slog.Time("t", c.TimeNow()),
			)
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, err error) {
			if err != nil {
				c.handle.diag.record(diag, err.Error())
			}
		},
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			if info.Err != nil {
				c.handle.diag.record(diag, info.Err.Error())
			}
		},
	}
}
