// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"slipway-cli/internal/container"
)

var (
	// ErrBind is the sentinel error wrapped by BindError.
	ErrBind = errors.New("bind error")
	// ErrEntryPoint is the sentinel error wrapped by EntryPointError.
	ErrEntryPoint = errors.New("entry point error")
)

// Patterns matched against the combined container output to classify a
// failed launch. Bind failures surface either from the engine (host port
// already mapped) or from the server inside the container.
var (
	bindPatterns = []string{
		"port is already allocated",
		"address already in use",
		"bind: permission denied",
		"address family not supported",
		"cannot assign requested address",
	}

	entryPointImportPattern = regexp.MustCompile(`(?i)could not import module "?([A-Za-z0-9_.]+)"?`)
	entryPointAttrPattern   = regexp.MustCompile(`(?i)attribute "?([A-Za-z0-9_.]+)"? not found in module "?([A-Za-z0-9_.]+)"?`)
	moduleNotFoundPattern   = regexp.MustCompile(`(?i)no module named '?([A-Za-z0-9_.]+)'?`)
)

type (
	// BindError is returned when the requested port cannot be bound, either
	// on the host side of the mapping or inside the container. It wraps
	// ErrBind.
	BindError struct {
		Port   container.NetworkPort
		Detail string
	}

	// EntryPointError is returned when the application object named by the
	// entry point descriptor cannot be loaded. It wraps ErrEntryPoint.
	EntryPointError struct {
		Entry  EntryPoint
		Detail string
	}
)

// Error implements the error interface.
func (e *BindError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot bind port %d: %s", e.Port, e.Detail)
	}
	return fmt.Sprintf("cannot bind port %d", e.Port)
}

// Unwrap returns ErrBind for errors.Is() compatibility.
func (e *BindError) Unwrap() error { return ErrBind }

// Error implements the error interface.
func (e *EntryPointError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot load entry point %q: %s", e.Entry, e.Detail)
	}
	return fmt.Sprintf("cannot load entry point %q", e.Entry)
}

// Unwrap returns ErrEntryPoint for errors.Is() compatibility.
func (e *EntryPointError) Unwrap() error { return ErrEntryPoint }

// classifyLaunchFailure inspects the captured output of a failed container
// run and returns a typed error if the failure is recognizable, or nil if it
// is not. Bind failures are checked first because an occupied port makes the
// engine fail before the application even starts.
func classifyLaunchFailure(output string, port container.NetworkPort, entry EntryPoint) error {
	lower := strings.ToLower(output)

	for _, pat := range bindPatterns {
		if strings.Contains(lower, pat) {
			return &BindError{Port: port, Detail: firstMatchingLine(output, pat)}
		}
	}

	if m := entryPointImportPattern.FindStringSubmatch(output); m != nil {
		return &EntryPointError{Entry: entry, Detail: fmt.Sprintf("could not import module %q", m[1])}
	}
	if m := entryPointAttrPattern.FindStringSubmatch(output); m != nil {
		return &EntryPointError{Entry: entry, Detail: fmt.Sprintf("attribute %q not found in module %q", m[1], m[2])}
	}
	if m := moduleNotFoundPattern.FindStringSubmatch(output); m != nil {
		return &EntryPointError{Entry: entry, Detail: fmt.Sprintf("no module named %q", m[1])}
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
