// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"strings"
	"testing"

	"slipway-cli/internal/build"
	"slipway-cli/internal/config"
	"slipway-cli/internal/issue"
	"slipway-cli/internal/launch"
	"slipway-cli/internal/manifest"
)

func TestGetVersionString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version = "1.2.3"
	got := getVersionString()
	if !strings.HasPrefix(got, "1.2.3") {
		t.Errorf("getVersionString() = %q, want 1.2.3 prefix", got)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay() = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("build container image").
		WithSuggestion("Check the engine daemon").
		Wrap(errors.New("boom")).
		Build()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "build container image") {
		t.Errorf("formatted error should name the operation, got %q", got)
	}
	if !strings.Contains(got, "Check the engine daemon") {
		t.Errorf("formatted error should include suggestions, got %q", got)
	}
}

func TestClassifyCommandError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantID issue.Id
	}{
		{"dependency resolution", &build.DependencyResolutionError{Requirement: "x==1"}, issue.DependencyResolutionId},
		{"toolchain", &build.ToolchainError{Detail: "gcc"}, issue.ToolchainId},
		{"bind", &launch.BindError{Port: 80}, issue.BindId},
		{"entry point", &launch.EntryPointError{Entry: launch.EntryPoint{Module: "app", Attribute: "app"}}, issue.EntryPointId},
		{"missing manifest", os.ErrNotExist, issue.ManifestNotFoundId},
		{"manifest parse", &manifest.ParseError{Path: "requirements.txt", Line: 3, Text: "??", Err: errors.New("bad")}, issue.ManifestParseErrorId},
		{"duplicate package", &manifest.DuplicatePackageError{Name: "flask"}, issue.ManifestParseErrorId},
		{"unclassified", errors.New("other"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, msg := classifyCommandError(tt.err, false)
			if gotID != tt.wantID {
				t.Errorf("issue id = %d, want %d", gotID, tt.wantID)
			}
			if !strings.Contains(msg, tt.err.Error()) {
				t.Errorf("styled message %q should include the error", msg)
			}
		})
	}
}

func TestResolveBuildRequest_Defaults(t *testing.T) {
	cfg = config.DefaultConfig()
	buildBaseImage, buildEntryPoint, buildPort, buildForce = "", "", 0, false

	req, err := resolveBuildRequest(".")
	if err != nil {
		t.Fatalf("resolveBuildRequest() error = %v", err)
	}
	if req.BaseImage != "python:3.11-slim" {
		t.Errorf("BaseImage = %q", req.BaseImage)
	}
	if req.Entry.String() != "app:app" {
		t.Errorf("Entry = %q", req.Entry)
	}
	if req.ExposePort != 8080 {
		t.Errorf("ExposePort = %d", req.ExposePort)
	}
	if req.ForceRebuild {
		t.Error("ForceRebuild should default to false")
	}
}

func TestResolveBuildRequest_FlagsOverrideConfig(t *testing.T) {
	cfg = config.DefaultConfig()
	buildBaseImage = "python:3.12-slim"
	buildEntryPoint = "src.main:application"
	buildPort = 9000
	buildForce = true
	defer func() { buildBaseImage, buildEntryPoint, buildPort, buildForce = "", "", 0, false }()

	req, err := resolveBuildRequest("/tmp")
	if err != nil {
		t.Fatalf("resolveBuildRequest() error = %v", err)
	}
	if req.BaseImage != "python:3.12-slim" {
		t.Errorf("BaseImage = %q", req.BaseImage)
	}
	if req.Entry.String() != "src.main:application" {
		t.Errorf("Entry = %q", req.Entry)
	}
	if req.ExposePort != 9000 {
		t.Errorf("ExposePort = %d", req.ExposePort)
	}
	if !req.ForceRebuild {
		t.Error("ForceRebuild should follow --force")
	}
}

func TestResolveBuildRequest_InvalidEntryPoint(t *testing.T) {
	cfg = config.DefaultConfig()
	buildEntryPoint = "not a descriptor"
	defer func() { buildEntryPoint = "" }()

	if _, err := resolveBuildRequest("."); !errors.Is(err, launch.ErrInvalidEntryPoint) {
		t.Errorf("resolveBuildRequest() error = %v, want InvalidEntryPointError", err)
	}
}
