// SPDX-License-Identifier: MPL-2.0

package build

import (
	"fmt"
	"strings"

	"slipway-cli/internal/container"
	"slipway-cli/internal/launch"
	"slipway-cli/internal/manifest"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// DockerfileName is the file name of the generated build recipe.
	DockerfileName = "Dockerfile"
	// AppWorkdir is where the source tree lives inside the image.
	AppWorkdir = "/app"
)

// DockerfileParams parameterizes Generate.
type DockerfileParams struct {
	// BaseImage is the image the build starts FROM.
	BaseImage string
	// Entry is the application object the image serves by default.
	Entry launch.EntryPoint
	// Port is the port the image declares and defaults PORT to.
	Port container.NetworkPort
	// InstallDeps emits the dependency layer. False when the manifest is
	// empty: pip would be a no-op and the extra layer just costs cache
	// space.
	InstallDeps bool
}

// Generate renders the build recipe. The dependency layer copies only the
// manifest and installs from it before the source overlay, so source-only
// changes leave the installed dependencies cached. The serve command reads
// PORT at container start, falling back to the declared port.
func Generate(params DockerfileParams) (string, error) {
	serve, err := serveCommand(params.Entry, params.Port)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n\n", params.BaseImage)

	b.WriteString("RUN apt-get update \\\n")
	b.WriteString("    && apt-get install -y --no-install-recommends build-essential \\\n")
	b.WriteString("    && rm -rf /var/lib/apt/lists/*\n\n")

	fmt.Fprintf(&b, "WORKDIR %s\n\n", AppWorkdir)

	if params.InstallDeps {
		fmt.Fprintf(&b, "COPY %s ./\n", manifest.FileName)
		fmt.Fprintf(&b, "RUN pip install --no-cache-dir -r %s\n\n", manifest.FileName)
	}

	b.WriteString("COPY . .\n\n")

	fmt.Fprintf(&b, "EXPOSE %d\n", params.Port)
	fmt.Fprintf(&b, "ENV %s=%d\n\n", launch.PortEnvVar, params.Port)

	fmt.Fprintf(&b, "CMD [\"sh\", \"-c\", %q]\n", serve)

	return b.String(), nil
}

// serveCommand builds the shell line that starts the server. The entry
// descriptor is shell-quoted so a descriptor can never break out of the
// command line.
func serveCommand(entry launch.EntryPoint, port container.NetworkPort) (string, error) {
	quoted, err := syntax.Quote(entry.String(), syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("failed to quote entry point %q: %w", entry, err)
	}
	return fmt.Sprintf("exec uvicorn %s --host %s --port \"${%s:-%d}\"",
		quoted, launch.BindAddress, launch.PortEnvVar, port), nil
}
