// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/bassosimone/netstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDialer(t *testing.T) {
	tests := []struct {
		name      string
		dialErr   error
		wantLocal string
	}{
		{
			name:      "successful dial",
			dialErr:   nil,
			wantLocal: "127.0.0.1:54321",
		},
		{
			name:      "failed dial",
			dialErr:   errors.New("connection refused"),
			wantLocal: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, records := newCapturingLogger()
			d := &loggingDialer{
				dialer: &netstub.FuncDialer{
					DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
						if tt.dialErr != nil {
							return nil, tt.dialErr
						}
						conn := newMinimalConn()
						conn.LocalAddrFunc = func() net.Addr {
							return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
						}
						return conn, nil
					},
				},
				errClassifier: DefaultErrClassifier,
				logger:        logger,
				timeNow:       time.Now,
			}

			conn, err := d.DialContext(context.Background(), "tcp", "93.184.216.34:443")
			if tt.dialErr != nil {
				require.ErrorIs(t, err, tt.dialErr)
				assert.Nil(t, conn)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, conn)
			}

			require.Len(t, *records, 2)
			assert.Equal(t, "connectStart", (*records)[0].Message)
			assert.Equal(t, "connectDone", (*records)[1].Message)
			assert.Equal(t, slog.LevelDebug, (*records)[1].Level)

			attrs := recordAttrs((*records)[1])
			assert.Equal(t, tt.wantLocal, attrs["localAddr"])
			assert.Equal(t, "93.184.216.34:443", attrs["remoteAddr"])
			assert.Equal(t, "tcp", attrs["protocol"])
		})
	}
}
