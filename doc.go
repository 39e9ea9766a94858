// SPDX-License-Identifier: GPL-3.0-or-later

// Package sfsconn is the network-access layer of a client that retrieves
// versioning and applicability metadata from a remote feed service.
//
// # Core Abstraction
//
// A [*Connection] owns one HTTP transport handle and performs single,
// blocking exchanges:
//
//	body, err := conn.Get(ctx, url)
//	body, err := conn.Post(ctx, url, jsonBody)
//
// Each exchange sends exactly one request, never follows redirects, never
// retries and never reuses the underlying network connection. POST always
// carries the Content-Type: application/json header. The response body is
// returned verbatim and is capped at [Config.MaxResponseSize] bytes (100,000
// by default): a larger body aborts the transfer.
//
// # Errors
//
// Every failure is an [*Error] carrying a [Code] and a non-empty message.
// Use [CodeOf] to extract the code from a (possibly wrapped) error:
//
//   - [InvalidArgument]: empty URL, unusable [Config]
//   - [ConnectionSetupFailed]: the handle or the request could not be configured
//   - [ConnectionUnexpectedError]: transport failure, including [ErrResponseTooLarge]
//   - [HttpTimeout]: the context deadline or [Config.Timeout] expired
//   - [HttpBadRequest]: status 400 or 405
//   - [HttpNotFound]: status 404
//   - [HttpServiceNotAvailable]: status 503
//   - [HttpUnexpected]: any other status but 200
//
// Transport failures carry the first diagnostic message the transport
// reported during the transfer (e.g., a TLS or write error) and wrap the
// original error.
//
// # Observability
//
// All events go through [SLogger] (compatible with [log/slog]); by default
// logging is disabled. Exchanges emit httpExchangeStart/httpExchangeDone
// span events at [slog.LevelInfo], connection and body events at
// [slog.LevelDebug], and one connectionFailure event at [slog.LevelWarn]
// for every failure. Use [NewSpanID] with [*slog.Logger.With] to correlate
// the events of an exchange. A [Recorder] receives one measurement per
// exchange; see the prommetrics package for Prometheus.
//
// # Concurrency
//
// A [*Connection] is confined to one goroutine at a time. Use one
// [*Connection] per concurrent caller.
//
// # Design Boundaries
//
// Retry, authentication and manifest parsing belong to higher layers,
// which can wrap [*Connection.GetFunc] and [*Connection.PostFunc] and
// chain them with [Compose2] and [DecodeJSONFunc]:
//
//	getApp := sfsconn.Compose2(conn.GetFunc(), sfsconn.DecodeJSONFunc[AppInfo]())
package sfsconn
