// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"slipway-cli/internal/build"
	"slipway-cli/internal/config"
	"slipway-cli/internal/container"
	"slipway-cli/internal/issue"
	"slipway-cli/internal/launch"

	"github.com/spf13/cobra"
)

var (
	launchImage      string
	launchEntryPoint string
	launchName       string

	launchCmd = &cobra.Command{
		Use:   "launch",
		Short: "Serve a built image as a foreground container",
		Long: `Launch runs a built application image as a single foreground
container, streaming its output until it exits or is interrupted. The
listen port comes from the PORT environment variable (falling back to the
configured default) and is published on all interfaces.

Without --image, launch serves the most recent build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runLaunch(cmd); err != nil {
				return reportCommandError(err)
			}
			return nil
		},
	}
)

func init() {
	launchCmd.Flags().StringVar(&launchImage, "image", "", "image tag to serve (default: the most recent build)")
	launchCmd.Flags().StringVar(&launchEntryPoint, "entrypoint", "", `application object as "module:attribute" (default: the image's record, then config)`)
	launchCmd.Flags().StringVar(&launchName, "name", "", "container name (default: engine-assigned)")
}

// runLaunch resolves the image and entry point, then serves the container
// until it exits.
func runLaunch(cmd *cobra.Command) error {
	engine, err := resolveEngine()
	if err != nil {
		return err
	}

	req, err := resolveLaunchRequest()
	if err != nil {
		return err
	}
	req.Stdout = cmd.OutOrStdout()
	req.Stderr = cmd.ErrOrStderr()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s serving %s on port %s (Ctrl-C to stop)\n",
		SuccessStyle.Render("➜"),
		ValueStyle.Render(string(req.Image)),
		ValueStyle.Render(req.Runtime.Port.String()))

	return launch.NewLauncher(engine).Launch(cmd.Context(), req)
}

// resolveLaunchRequest combines flags, the build record, and the
// configuration into one launch request.
func resolveLaunchRequest() (launch.Request, error) {
	var record *build.Artifact

	if launchImage == "" {
		cacheDir, err := config.CacheDir()
		if err != nil {
			return launch.Request{}, err
		}
		record, err = build.LoadLatest(cacheDir)
		if errors.Is(err, build.ErrNoRecord) {
			return launch.Request{}, issue.NewErrorContext().
				WithOperation("resolve image to serve").
				WithSuggestion("Build an image first: slipway build").
				WithSuggestion("Or name one explicitly: slipway launch --image <tag>").
				Wrap(err).
				BuildError()
		} else if err != nil {
			return launch.Request{}, err
		}
		launchImage = string(record.Tag)
	}

	descriptor := cfg.EntryPoint
	if record != nil && record.EntryPoint != "" {
		descriptor = record.EntryPoint
	}
	if launchEntryPoint != "" {
		descriptor = launchEntryPoint
	}
	entry, err := launch.ParseEntryPoint(descriptor)
	if err != nil {
		return launch.Request{}, err
	}

	runtime, err := launch.ResolveRuntimeConfigFromEnv(container.NetworkPort(cfg.DefaultPort))
	if err != nil {
		return launch.Request{}, err
	}

	return launch.Request{
		Image:   container.ImageTag(launchImage),
		Entry:   entry,
		Runtime: runtime,
		Name:    container.ContainerName(launchName),
	}, nil
}
