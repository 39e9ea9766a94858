// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncAdapter(t *testing.T) {
	called := false
	adapter := FuncAdapter[int, string](func(ctx context.Context, input int) (string, error) {
		called = true
		return "result", nil
	})

	output, err := adapter.Call(context.Background(), 42)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "result", output)
}

func TestConnectionFuncs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte(r.Method + ":" + string(data)))
	}))
	defer srv.Close()

	conn := newTestConnection(t, NewConfig(), DefaultSLogger())

	body, err := conn.GetFunc().Call(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "GET:", body)

	body, err = conn.PostFunc().Call(context.Background(), PostRequest{URL: srv.URL, Body: `{"a":1}`})
	require.NoError(t, err)
	assert.Equal(t, `POST:{"a":1}`, body)
}

// A caller-provided wrapper can layer a policy on top of the connection.
func TestConnectionFuncWrapping(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	conn := newTestConnection(t, NewConfig(), DefaultSLogger())
	inner := conn.GetFunc()
	twice := FuncAdapter[string, string](func(ctx context.Context, url string) (string, error) {
		var (
			body string
			err  error
		)
		for range 2 {
			attempts++
			if body, err = inner.Call(ctx, url); CodeOf(err) != HttpServiceNotAvailable {
				break
			}
		}
		return body, err
	})

	_, err := twice.Call(context.Background(), srv.URL)
	requireCode(t, err, HttpServiceNotAvailable)
	assert.Equal(t, 2, attempts)
}
