// SPDX-License-Identifier: GPL-3.0-or-later

// Package cli implements the sfsctl command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// globalFlags contains the flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	logFormat   string
	metricsFile string
	timeout     time.Duration
	verbose     bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "sfsctl",
		Short: "Fetch feed metadata over HTTP",
		Long: `sfsctl performs a single GET or POST exchange with a feed service
and prints the response body on the standard output.

Get started:
  sfsctl get https://example.com/feeds/app
  sfsctl post https://example.com/feeds/query --data '{"name":"app"}'`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.DurationVar(&flags.timeout, "timeout", 0, "Overall exchange timeout (e.g., 10s)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGetCmd(flags), newPostCmd(flags))
	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the version info
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}
