// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    ExitCode
		wantErr bool
	}{
		{"success", ExitOK, false},
		{"generic failure", ExitFailure, false},
		{"dependency resolution", ExitDependencyResolution, false},
		{"toolchain", ExitToolchain, false},
		{"bind", ExitBind, false},
		{"entry point", ExitEntryPoint, false},
		{"max valid", ExitCode(255), false},
		{"negative", ExitCode(-1), true},
		{"too large", ExitCode(256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("Validate() error should wrap ErrInvalidExitCode, got %v", err)
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitOK.IsSuccess() {
		t.Error("ExitOK.IsSuccess() = false, want true")
	}
	if ExitBind.IsSuccess() {
		t.Error("ExitBind.IsSuccess() = true, want false")
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()

	if got := ExitDependencyResolution.String(); got != "10" {
		t.Errorf("String() = %q, want %q", got, "10")
	}
}

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/srv/app"), false},
		{"relative path", FilesystemPath("./app"), false},
		{"empty", FilesystemPath(""), true},
		{"whitespace only", FilesystemPath("  \t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("Validate() error should wrap ErrInvalidFilesystemPath, got %v", err)
			}
		})
	}
}
