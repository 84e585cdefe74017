// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"slipway-cli/internal/build"
	"slipway-cli/internal/config"
	"slipway-cli/internal/container"
	"slipway-cli/internal/launch"

	"github.com/spf13/cobra"

	"slipway-cli/pkg/types"
)

var (
	buildBaseImage  string
	buildEntryPoint string
	buildPort       int
	buildForce      bool

	buildCmd = &cobra.Command{
		Use:   "build [source-dir]",
		Short: "Build an application image from a source tree",
		Long: `Build packages a source tree and its requirements.txt into an
immutable container image. Dependencies are installed in their own image
layer before the source is overlaid, so rebuilding after a source-only
change reuses the installed dependencies. Building the same inputs twice
reuses the existing image entirely.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDir := "."
			if len(args) == 1 {
				sourceDir = args[0]
			}

			artifact, err := runBuild(cmd, sourceDir)
			if err != nil {
				return reportCommandError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s built %s\n",
				SuccessStyle.Render("✓"), ValueStyle.Render(string(artifact.Tag)))
			return nil
		},
	}
)

func init() {
	buildCmd.Flags().StringVar(&buildBaseImage, "base-image", "", "base image to build from (default from config)")
	buildCmd.Flags().StringVar(&buildEntryPoint, "entrypoint", "", `application object as "module:attribute" (default from config)`)
	buildCmd.Flags().IntVar(&buildPort, "port", 0, "port the image declares and defaults PORT to (default from config)")
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "rebuild even when an image for the same inputs exists")
}

// runBuild resolves flags against the configuration and drives one build.
func runBuild(cmd *cobra.Command, sourceDir string) (*build.Artifact, error) {
	engine, err := resolveEngine()
	if err != nil {
		return nil, err
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		return nil, err
	}

	req, err := resolveBuildRequest(sourceDir)
	if err != nil {
		return nil, err
	}
	req.Stdout = cmd.OutOrStdout()
	req.Stderr = cmd.ErrOrStderr()

	return build.NewBuilder(engine, cacheDir).Build(cmd.Context(), req)
}

// resolveBuildRequest combines per-command flags with configured defaults.
func resolveBuildRequest(sourceDir string) (build.Request, error) {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return build.Request{}, err
	}

	baseImage := cfg.BaseImage
	if buildBaseImage != "" {
		baseImage = buildBaseImage
	}

	descriptor := cfg.EntryPoint
	if buildEntryPoint != "" {
		descriptor = buildEntryPoint
	}
	entry, err := launch.ParseEntryPoint(descriptor)
	if err != nil {
		return build.Request{}, err
	}

	port := cfg.DefaultPort
	if buildPort != 0 {
		port = buildPort
	}
	exposePort := container.NetworkPort(port)
	if port < 1 || port > 65535 {
		exposePort = 0 // fails validation with the right error
	}

	return build.Request{
		SourceDir:    types.FilesystemPath(abs),
		BaseImage:    baseImage,
		Entry:        entry,
		ExposePort:   exposePort,
		ForceRebuild: buildForce,
	}, nil
}
