// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the domain
// packages (manifest, build, launch). It is a leaf dependency: it imports
// only the standard library.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Process exit codes reported by slipway. Build-time failures are in the 10s,
// launch-time failures in the 20s, so an orchestrator can tell which phase
// failed without parsing output.
const (
	// ExitOK means the command completed (or the launched process exited cleanly).
	ExitOK ExitCode = 0
	// ExitFailure is the generic non-zero code for unclassified failures.
	ExitFailure ExitCode = 1
	// ExitDependencyResolution means a manifest entry could not be satisfied.
	ExitDependencyResolution ExitCode = 10
	// ExitToolchain means native build prerequisites could not be provisioned.
	ExitToolchain ExitCode = 11
	// ExitBind means the configured port could not be bound.
	ExitBind ExitCode = 20
	// ExitEntryPoint means the application entry object could not be loaded.
	ExitEntryPoint ExitCode = 21
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
