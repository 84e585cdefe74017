// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrDependencyResolution is the sentinel error wrapped by
	// DependencyResolutionError.
	ErrDependencyResolution = errors.New("dependency resolution error")
	// ErrToolchain is the sentinel error wrapped by ToolchainError.
	ErrToolchain = errors.New("toolchain error")
)

// Patterns matched against the captured build output. Resolution failures
// come from the installer (unknown package, impossible constraint);
// toolchain failures come from the build-tool layer or from compiling a
// native extension.
var (
	resolutionRequirementPattern = regexp.MustCompile(
		`(?i)(?:could not find a version that satisfies the requirement|no matching distribution found for) (\S+)`)
	invalidRequirementPattern = regexp.MustCompile(
		`(?i)invalid requirement:? '?([^'\n]+)'?`)

	toolchainPatterns = []string{
		"unable to locate package",
		"unable to fetch some archives",
		"apt-get: not found",
		"command 'gcc' failed",
		"command 'cc' failed",
		"unable to execute 'gcc'",
		"failed building wheel for",
		"error: metadata-generation-failed",
		"pip: not found",
		"pip: command not found",
	}
)

type (
	// DependencyResolutionError is returned when a manifest entry cannot be
	// resolved to an installable package. It wraps ErrDependencyResolution.
	DependencyResolutionError struct {
		Requirement string
		Detail      string
	}

	// ToolchainError is returned when the image's build tooling is missing
	// or fails, independent of what the manifest asked for. It wraps
	// ErrToolchain.
	ToolchainError struct {
		Detail string
	}
)

// Error implements the error interface.
func (e *DependencyResolutionError) Error() string {
	if e.Requirement != "" {
		return fmt.Sprintf("cannot resolve dependency %q: %s", e.Requirement, e.Detail)
	}
	return fmt.Sprintf("cannot resolve dependencies: %s", e.Detail)
}

// Unwrap returns ErrDependencyResolution for errors.Is() compatibility.
func (e *DependencyResolutionError) Unwrap() error { return ErrDependencyResolution }

// Error implements the error interface.
func (e *ToolchainError) Error() string {
	return fmt.Sprintf("build toolchain failure: %s", e.Detail)
}

// Unwrap returns ErrToolchain for errors.Is() compatibility.
func (e *ToolchainError) Unwrap() error { return ErrToolchain }

// classifyBuildFailure inspects the captured output of a failed image build
// and returns a typed error if the failure is recognizable, or nil if it is
// not. Resolution failures take precedence: when the installer names the
// requirement it could not satisfy, that is the actionable fact even if a
// wheel build also broke along the way.
func classifyBuildFailure(output string) error {
	if m := resolutionRequirementPattern.FindStringSubmatch(output); m != nil {
		return &DependencyResolutionError{
			Requirement: strings.TrimRight(m[1], ".,;"),
			Detail:      firstMatchingLine(output, strings.ToLower(m[0])),
		}
	}
	if m := invalidRequirementPattern.FindStringSubmatch(output); m != nil {
		return &DependencyResolutionError{
			Requirement: strings.TrimSpace(m[1]),
			Detail:      "invalid requirement",
		}
	}

	lower := strings.ToLower(output)
	for _, pat := range toolchainPatterns {
		if strings.Contains(lower, pat) {
			return &ToolchainError{Detail: firstMatchingLine(output, pat)}
		}
	}

	return nil
}

// firstMatchingLine returns the first output line containing pat
// (case-insensitively), trimmed, for use as error detail.
func firstMatchingLine(output, pat string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(strings.ToLower(line), pat) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
