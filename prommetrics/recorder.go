// SPDX-License-Identifier: GPL-3.0-or-later

// Package prommetrics exports [sfsconn.Connection] measurements to Prometheus.
package prommetrics

import (
	"time"

	"github.com/bassosimone/sfsconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outcomeOK is the outcome label of successful exchanges.
const outcomeOK = "ok"

// Recorder implements [sfsconn.Recorder] using Prometheus collectors.
//
// Construct using [New].
type Recorder struct {
	// ExchangesTotal counts exchanges by method and outcome.
	ExchangesTotal *prometheus.CounterVec

	// ExchangeDuration observes exchange latency by method.
	ExchangeDuration *prometheus.HistogramVec

	// ResponseBytes observes the size of the bodies returned to callers.
	ResponseBytes *prometheus.HistogramVec
}

var _ sfsconn.Recorder = &Recorder{}

// New creates a [*Recorder] and registers its collectors with reg.
//
// The outcome label is "ok" on success and the [sfsconn.Code] otherwise.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		ExchangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sfsconn",
				Name:      "exchanges_total",
				Help:      "Total number of exchanges by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		ExchangeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sfsconn",
				Name:      "exchange_duration_seconds",
				Help:      "Exchange latency histogram",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method"},
		),
		ResponseBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sfsconn",
				Name:      "response_bytes",
				Help:      "Size of the response bodies returned to callers",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 7), // 64B to 256KiB
			},
			[]string{"method"},
		),
	}
}

// RecordExchange implements [sfsconn.Recorder].
func (r *Recorder) RecordExchange(method string, code sfsconn.Code, elapsed time.Duration, size int) {
	outcome := outcomeOK
	if code != "" {
		outcome = code.String()
	}
	r.ExchangesTotal.WithLabelValues(method, outcome).Inc()
	r.ExchangeDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if code == "" {
		r.ResponseBytes.WithLabelValues(method).Observe(float64(size))
	}
}
