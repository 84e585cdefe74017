// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogging routes slog through a styled charmbracelet handler on stderr,
// so container output on stdout stays clean for piping.
func setupLogging(verboseMode bool) {
	level := log.WarnLevel
	if verboseMode {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "slipway",
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
}
