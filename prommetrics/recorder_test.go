// SPDX-License-Identifier: GPL-3.0-or-later

package prommetrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassosimone/sfsconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExchange(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg)

	rec.RecordExchange(http.MethodGet, "", 10*time.Millisecond, 128)
	rec.RecordExchange(http.MethodGet, "", 20*time.Millisecond, 256)
	rec.RecordExchange(http.MethodPost, sfsconn.HttpNotFound, 5*time.Millisecond, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.ExchangesTotal.WithLabelValues("GET", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ExchangesTotal.WithLabelValues("POST", "http_not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.ExchangeDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.ResponseBytes))
}

// Registering twice on the same registry panics like any promauto collector.
func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestRecorderWithConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	cfg := sfsconn.NewConfig()
	cfg.Recorder = New(reg)
	conn, err := sfsconn.NewConnection(cfg, sfsconn.DefaultSLogger())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	_, err = conn.Post(context.Background(), srv.URL, `{}`)
	require.Error(t, err)

	rec := cfg.Recorder.(*Recorder)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ExchangesTotal.WithLabelValues("GET", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ExchangesTotal.WithLabelValues("POST", "http_service_not_available")))

	count, err := testutil.GatherAndCount(reg, "sfsconn_exchanges_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
