// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bassosimone/sfsconn"
	"github.com/bassosimone/sfsconn/prommetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url>",
		Short: "Perform a GET exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExchange(cmd, flags, func(ctx context.Context, conn *sfsconn.Connection) (string, error) {
				return conn.Get(ctx, args[0])
			})
		},
	}
}

func newPostCmd(flags *globalFlags) *cobra.Command {
	var (
		data     string
		dataFile string
	)
	cmd := &cobra.Command{
		Use:   "post <url>",
		Short: "Perform a POST exchange with a JSON body",
		Long: `Perform a POST exchange sending the body verbatim with the
Content-Type: application/json header.

Example:
  sfsctl post https://example.com/feeds/query --data '{"name":"app"}'
  sfsctl post https://example.com/feeds/query --data-file query.json
  sfsctl post https://example.com/feeds/query --data-file - < query.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, data, dataFile)
			if err != nil {
				return err
			}
			return runExchange(cmd, flags, func(ctx context.Context, conn *sfsconn.Connection) (string, error) {
				return conn.Post(ctx, args[0], body)
			})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "Request body")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "Read the request body from this file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
	return cmd
}

func readBody(cmd *cobra.Command, data, dataFile string) (string, error) {
	switch dataFile {
	case "":
		return data, nil
	case "-":
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(raw), nil
	default:
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(raw), nil
	}
}

// runExchange builds a connection from the settings, runs fx, and
// prints the response body.
func runExchange(cmd *cobra.Command, flags *globalFlags,
	fx func(ctx context.Context, conn *sfsconn.Connection) (string, error)) error {
	st, err := loadSettings(flags.configPath)
	if err != nil {
		return err
	}
	st.applyFlags(flags, cmd.Flags().Changed)

	logger, err := newLogger(cmd.ErrOrStderr(), st.logLevel, st.logFormat)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	st.conn.Recorder = prommetrics.New(reg)

	conn, err := sfsconn.NewConnection(st.conn, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	body, err := fx(cmd.Context(), conn)
	if flags.metricsFile != "" {
		if werr := prometheus.WriteToTextfile(flags.metricsFile, reg); werr != nil {
			logger.Warn("writeMetricsFailed", "err", werr)
		}
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), body)
	return err
}
