// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"slipway-cli/internal/container"
	"slipway-cli/internal/launch"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up [source-dir]",
	Short: "Build an image and serve it in one step",
	Long: `Up is build followed by launch: it packages the source tree into
an image (reusing an existing image when nothing changed) and immediately
serves it as a foreground container.`,
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
		fmt.Fprintf(cmd.ErrOrStderr(), "%s built %s\n",
			SuccessStyle.Render("✓"), ValueStyle.Render(string(artifact.Tag)))

		engine, err := resolveEngine()
		if err != nil {
			return reportCommandError(err)
		}

		entry, err := launch.ParseEntryPoint(artifact.EntryPoint)
		if err != nil {
			return reportCommandError(err)
		}

		runtime, err := launch.ResolveRuntimeConfigFromEnv(container.NetworkPort(artifact.ExposePort))
		if err != nil {
			return reportCommandError(err)
		}

		req := launch.Request{
			Image:   artifact.Tag,
			Entry:   entry,
			Runtime: runtime,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s serving %s on port %s (Ctrl-C to stop)\n",
			SuccessStyle.Render("➜"),
			ValueStyle.Render(string(req.Image)),
			ValueStyle.Render(req.Runtime.Port.String()))

		if err := launch.NewLauncher(engine).Launch(cmd.Context(), req); err != nil {
			return reportCommandError(err)
		}
		return nil
	},
}

func init() {
	upCmd.Flags().StringVar(&buildBaseImage, "base-image", "", "base image to build from (default from config)")
	upCmd.Flags().StringVar(&buildEntryPoint, "entrypoint", "", `application object as "module:attribute" (default from config)`)
	upCmd.Flags().IntVar(&buildPort, "port", 0, "port the image declares and defaults PORT to (default from config)")
	upCmd.Flags().BoolVar(&buildForce, "force", false, "rebuild even when an image for the same inputs exists")
}
