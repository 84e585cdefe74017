// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "build image",
			},
			expected: "failed to build image",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "read dependency manifest",
				Resource:  "./requirements.txt",
			},
			expected: "failed to read dependency manifest: ./requirements.txt",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "launch container",
				Cause:     errors.New("port 8080 already in use"),
			},
			expected: "failed to launch container: port 8080 already in use",
		},
		{
			name: "operation with resource and cause",
			err: &ActionableError{
				Operation: "build image",
				Resource:  "slipway-app:abc123",
				Cause:     errors.New("exit status 1"),
			},
			expected: "failed to build image: slipway-app:abc123: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	err := NewErrorContext().
		WithOperation("launch container").
		WithResource("slipway-app:abc123").
		WithSuggestion("Launch on a different port").
		Wrap(errors.New("port already allocated")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "failed to launch container") {
		t.Errorf("Format(false) missing operation: %q", plain)
	}
	if !strings.Contains(plain, "• Launch on a different port") {
		t.Errorf("Format(false) missing suggestion: %q", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) should not include error chain: %q", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain: %q", verbose)
	}
	if !strings.Contains(verbose, "1. port already allocated") {
		t.Errorf("Format(true) missing cause in chain: %q", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	if got := NewErrorContext().Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("build image").
		WithSuggestions("check the manifest", "rerun the build").
		Wrap(cause).
		Build()
	if ae == nil {
		t.Fatal("Build() = nil, want error")
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions count = %d, want 2", len(ae.Suggestions))
	}
	if !errors.Is(ae, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestWrapWithOperation(t *testing.T) {
	if got := WrapWithOperation(nil, "build image"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	cause := errors.New("boom")
	ae := WrapWithContext(cause, "launch container", "slipway-app:abc123")
	if ae == nil {
		t.Fatal("WrapWithContext() = nil, want error")
	}
	if ae.Resource != "slipway-app:abc123" {
		t.Errorf("Resource = %q", ae.Resource)
	}
}
