// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"slipway-cli/internal/config"
	"slipway-cli/internal/container"
	"slipway-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration, available to all subcommands.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "slipway",
		Short: "Package and serve web applications as containers",
		Long: TitleStyle.Render("slipway") + SubtitleStyle.Render(" - Package and serve web applications as containers") + `

slipway builds an application source tree and its requirements.txt into
an immutable container image, installing dependencies in their own image
layer so source-only changes rebuild fast. It then serves the image as a
single foreground container, reading PORT from the environment.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Put a requirements.txt next to your application source
  2. Build an image with: slipway build
  3. Serve it with: slipway launch

` + SubtitleStyle.Render("Examples:") + `
  slipway build                  Build an image from the current directory
  slipway build ./svc            Build an image from ./svc
  slipway launch                 Serve the most recent build
  slipway up                     Build and serve in one step
  PORT=9000 slipway launch       Serve on port 9000`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/slipway/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(upCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Surface config loading problems but keep going on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.Verbose
	}

	setupLogging(verbose)
}

// resolveEngine picks the container engine the configuration asks for.
func resolveEngine() (container.Engine, error) {
	switch cfg.ContainerEngine {
	case config.ContainerEnginePodman:
		return container.NewEngine(container.EngineTypePodman)
	case config.ContainerEngineDocker:
		return container.NewEngine(container.EngineTypeDocker)
	default:
		return container.NewEngine(container.EngineTypeAuto)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
