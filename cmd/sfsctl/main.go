// SPDX-License-Identifier: GPL-3.0-or-later

// Command sfsctl fetches feed metadata using an [sfsconn.Connection].
package main

import "github.com/bassosimone/sfsconn/internal/cli"

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, buildTime)
	cli.Execute()
}
