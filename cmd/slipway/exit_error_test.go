// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"slipway-cli/internal/build"
	"slipway-cli/internal/container"
	"slipway-cli/internal/launch"

	"slipway-cli/pkg/types"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{
			name: "dependency resolution failure",
			err:  &build.DependencyResolutionError{Requirement: "no-such==1.0"},
			want: types.ExitDependencyResolution,
		},
		{
			name: "toolchain failure",
			err:  &build.ToolchainError{Detail: "gcc missing"},
			want: types.ExitToolchain,
		},
		{
			name: "bind failure",
			err:  &launch.BindError{Port: 8080},
			want: types.ExitBind,
		},
		{
			name: "entry point failure",
			err:  &launch.EntryPointError{Entry: launch.EntryPoint{Module: "app", Attribute: "app"}},
			want: types.ExitEntryPoint,
		},
		{
			name: "wrapped classified failure",
			err:  fmt.Errorf("build failed: %w", &build.ToolchainError{Detail: "apt broke"}),
			want: types.ExitToolchain,
		},
		{
			name: "unclassified container exit passes through",
			err:  fmt.Errorf("launch container: %w", &container.ContainerExitError{ExitCode: 3}),
			want: types.ExitCode(3),
		},
		{
			name: "unclassified failure",
			err:  errors.New("something else"),
			want: types.ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapExit(t *testing.T) {
	if wrapExit(nil) != nil {
		t.Error("wrapExit(nil) should stay nil")
	}

	err := wrapExit(&launch.BindError{Port: 8080})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("wrapExit() = %T, want *ExitError", err)
	}
	if exitErr.Code != types.ExitBind {
		t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitBind)
	}
	if !errors.Is(err, launch.ErrBind) {
		t.Error("ExitError should preserve the wrapped error chain")
	}
}

func TestExitError_Error(t *testing.T) {
	withCause := &ExitError{Code: types.ExitBind, Err: errors.New("port busy")}
	if withCause.Error() != "port busy" {
		t.Errorf("Error() = %q, want the cause's message", withCause.Error())
	}

	bare := &ExitError{Code: types.ExitToolchain}
	if bare.Error() != "exit status 11" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 11")
	}
}
