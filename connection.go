//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/httpconn.go
//

package sfsconn

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/http2"
)

// Connection performs GET and POST exchanges with a remote feed service.
//
// Each exchange is a single blocking request/response: there is no
// caching, no retry, and no connection reuse between exchanges. The
// response body is capped at [Config.MaxResponseSize] bytes and every
// failure is reported as an [*Error].
//
// A Connection owns one transport handle for its entire lifetime. The
// caller is responsible for calling [Connection.Close] when done.
//
// A Connection is not safe for concurrent use: at most one exchange may
// be in flight. Use distinct Connections for concurrent exchanges.
//
// Construct using [NewConnection].
type Connection struct {
	// handle is the owned transport handle.
	handle *transportHandle

	// acc accumulates the body of the current exchange.
	acc *accumulator

	// ErrClassifier classifies errors for structured logging.
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	Logger SLogger

	// Recorder receives per-exchange measurements.
	Recorder Recorder

	// TimeNow is the function to get the current time (configurable for testing).
	TimeNow func() time.Time
}

// transportHandle is the HTTP client state owned by a [*Connection].
type transportHandle struct {
	// client performs the exchanges.
	client *http.Client

	// counters tracks the bytes moved by the current exchange.
	counters *trafficCounters

	// txp is the transport used by client.
	txp *http.Transport

	// diag holds the diagnostic buffer bound for the current transfer.
	diag diagBinding

	// closed is set once the handle has been released.
	closed atomic.Bool

	// closeOnce ensures that the handle is released exactly once.
	closeOnce sync.Once
}

// NewConnection validates cfg and returns a new [*Connection].
//
// The logger argument is the [SLogger] to use for structured logging; a
// nil logger is replaced by [DefaultSLogger].
//
// Returns an [*Error] with code [InvalidArgument] when cfg is unusable and
// [ConnectionSetupFailed] when the transport handle cannot be configured.
func NewConnection(cfg *Config, logger SLogger) (*Connection, error) {
	if logger == nil {
		logger = DefaultSLogger()
	}
	if err := cfg.validate(); err != nil {
		return nil, logFailure(logger, DefaultErrClassifier, err)
	}
	handle, err := newTransportHandle(cfg, logger)
	if err != nil {
		return nil, logFailure(logger, cfg.ErrClassifier, err)
	}
	conn := &Connection{
		handle:        handle,
		acc:           newAccumulator(cfg.MaxResponseSize),
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Recorder:      cfg.Recorder,
		TimeNow:       cfg.TimeNow,
	}
	return conn, nil
}

func newTransportHandle(cfg *Config, logger SLogger) (*transportHandle, *Error) {
	handle := &transportHandle{counters: &trafficCounters{}}
	dialer := &loggingDialer{
		counters:      handle.counters,
		dialer:        cfg.Dialer,
		errClassifier: cfg.ErrClassifier,
		logger:        logger,
		timeNow:       cfg.TimeNow,
	}
	txp := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		DialContext:        dialer.DialContext,
		TLSClientConfig:    cfg.TLSConfig.Clone(),
		DisableKeepAlives:  true,
		DisableCompression: true,
	}

	// A custom TLS config or dialer disables the stdlib automatic HTTP/2
	// upgrade, so we always configure HTTP/2 explicitly. This also adds
	// the ALPN protocols to TLSClientConfig.
	if err := http2.ConfigureTransport(txp); err != nil {
		return nil, E(ConnectionSetupFailed, "failed to set up the HTTP transport: "+err.Error(), WithCauseOption(err))
	}

	tlsd := &tlsDialer{
		config:        txp.TLSClientConfig,
		diag:          &handle.diag,
		dialer:        dialer,
		engine:        cfg.TLSEngine,
		errClassifier: cfg.ErrClassifier,
		logger:        logger,
		timeNow:       cfg.TimeNow,
	}
	txp.DialTLSContext = tlsd.DialTLSContext

	handle.txp = txp
	handle.client = &http.Client{
		Transport: txp,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return handle, nil
}

// Get performs a GET exchange and returns the response body.
//
// Returns an [*Error] with code [InvalidArgument] when url is empty, in
// which case no exchange takes place.
func (c *Connection) Get(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", c.fail(E(InvalidArgument, "url cannot be empty"))
	}
	return c.exchange(ctx, http.MethodGet, url, "", &headerList{})
}

// Post performs a POST exchange sending body verbatim with the
// Content-Type: application/json header and returns the response body.
//
// Returns an [*Error] with code [InvalidArgument] when url is empty, in
// which case no exchange takes place.
func (c *Connection) Post(ctx context.Context, url, body string) (string, error) {
	if url == "" {
		return "", c.fail(E(InvalidArgument, "url cannot be empty"))
	}
	headers := &headerList{}
	if err := headers.add(headerContentType, "application/json"); err != nil {
		return "", c.fail(err)
	}
	return c.exchange(ctx, http.MethodPost, url, body, headers)
}

// Close releases the transport handle.
//
// Subsequent calls return [net.ErrClosed], and subsequent exchanges fail
// with [ConnectionSetupFailed].
func (c *Connection) Close() (err error) {
	err = net.ErrClosed
	c.handle.closeOnce.Do(func() {
		c.handle.closed.Store(true)
		c.handle.txp.CloseIdleConnections()
		err = nil
	})
	return
}

// exchange wraps [*Connection.perform] with span events and measurements.
func (c *Connection) exchange(
	ctx context.Context, method, url, body string, headers *headerList) (string, error) {
	t0 := c.TimeNow()
	deadline, _ := ctx.Deadline()
	c.handle.counters.reset()
	c.logExchangeStart(method, url, headers, t0, deadline)

	var reqBody io.Reader
	if method == http.MethodPost {
		reqBody = strings.NewReader(body)
	}
	resp, status, err := c.perform(ctx, method, url, reqBody, headers)

	c.logExchangeDone(method, url, headers, t0, deadline, status, len(resp), err)
	c.Recorder.RecordExchange(method, CodeOf(err), c.TimeNow().Sub(t0), len(resp))
	return resp, err
}

func (c *Connection) logExchangeStart(method, url string, headers *headerList, t0, deadline time.Time) {
	c.Logger.Info(
		"httpExchangeStart",
		slog.Time("deadline", deadline),
		slog.String("httpMethod", method),
		slog.String("httpUrl", url),
		slog.Any("httpRequestHeaders", headers.entries),
		slog.Time("t", t0),
	)
}

func (c *Connection) logExchangeDone(method, url string, headers *headerList,
	t0, deadline time.Time, status, size int, err error) {
	c.Logger.Info(
		"httpExchangeDone",
		slog.Time("deadline", deadline),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.String("errCode", string(CodeOf(err))),
		slog.String("httpMethod", method),
		slog.String("httpUrl", url),
		slog.Any("httpRequestHeaders", headers.entries),
		slog.Int("httpResponseStatusCode", status),
		slog.Int("httpResponseBodySize", size),
		slog.Int64("ioBytesRead", c.handle.counters.bytesRead()),
		slog.Int64("ioBytesWritten", c.handle.counters.bytesWritten()),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)
}

// fail logs the failure and returns it.
func (c *Connection) fail(err *Error) *Error {
	return logFailure(c.Logger, c.ErrClassifier, err)
}

// logFailure emits a connectionFailure event and returns err.
func logFailure(logger SLogger, classifier ErrClassifier, err *Error) *Error {
	logger.Warn(
		"connectionFailure",
		slog.Any("err", err.Cause),
		slog.String("errClass", classifier.Classify(err.Cause)),
		slog.String("errCode", string(err.Code)),
		slog.String("errMessage", err.Message),
	)
	return err
}
