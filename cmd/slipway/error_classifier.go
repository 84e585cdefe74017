// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"slipway-cli/internal/build"
	"slipway-cli/internal/container"
	"slipway-cli/internal/issue"
	"slipway-cli/internal/launch"
	"slipway-cli/internal/manifest"
)

// classifyCommandError maps build/launch failures to issue catalog IDs and
// returns a styled message for CLI rendering. It preserves actionable error details.
func classifyCommandError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	issueID = 0

	var engineErr *container.ErrEngineNotAvailable
	switch {
	case errors.As(err, &engineErr):
		issueID = issue.EngineNotFoundId
	case errors.Is(err, build.ErrDependencyResolution):
		issueID = issue.DependencyResolutionId
	case errors.Is(err, build.ErrToolchain):
		issueID = issue.ToolchainId
	case errors.Is(err, launch.ErrBind):
		issueID = issue.BindId
	case errors.Is(err, launch.ErrEntryPoint):
		issueID = issue.EntryPointId
	case errors.Is(err, os.ErrNotExist):
		issueID = issue.ManifestNotFoundId
	case errors.Is(err, manifest.ErrDuplicatePackage):
		issueID = issue.ManifestParseErrorId
	default:
		var parseErr *manifest.ParseError
		if errors.As(err, &parseErr) {
			issueID = issue.ManifestParseErrorId
		}
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// reportCommandError renders the matching issue card (when one exists) and
// the styled error message to stderr, then returns the error annotated with
// its exit code.
func reportCommandError(err error) error {
	issueID, styledMsg := classifyCommandError(err, verbose)
	if issueID != 0 {
		if rendered, renderErr := issue.Get(issueID).Render("dark"); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	}
	fmt.Fprint(os.Stderr, styledMsg)
	return wrapExit(err)
}
