// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"slipway-cli/internal/build"
	"slipway-cli/internal/container"
	"slipway-cli/internal/launch"

	"slipway-cli/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps classified build and launch failures to their distinct
// exit codes so callers can script against them. An unclassified container
// exit passes its code through.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case errors.Is(err, build.ErrDependencyResolution):
		return types.ExitDependencyResolution
	case errors.Is(err, build.ErrToolchain):
		return types.ExitToolchain
	case errors.Is(err, launch.ErrBind):
		return types.ExitBind
	case errors.Is(err, launch.ErrEntryPoint):
		return types.ExitEntryPoint
	}

	var containerExit *container.ContainerExitError
	if errors.As(err, &containerExit) && containerExit.ExitCode != 0 {
		return containerExit.ExitCode
	}
	return types.ExitFailure
}

// wrapExit attaches the classified exit code to err. A nil err stays nil.
func wrapExit(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitCodeFor(err), Err: err}
}
