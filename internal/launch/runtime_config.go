// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"os"
	"strconv"

	"slipway-cli/internal/container"
)

// PortEnvVar is the environment variable consulted for the listen port.
const PortEnvVar = "PORT"

// BindAddress is the interface the application binds inside the container.
// Binding loopback would make the mapped port unreachable from the host.
const BindAddress = "0.0.0.0"

// InvalidPortValueError is returned when the PORT environment variable is
// set but does not hold a usable port number. An unusable port can never be
// bound, so it wraps ErrBind alongside the parse cause.
type InvalidPortValueError struct {
	Value string
	Err   error
}

// Error implements the error interface.
func (e *InvalidPortValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", PortEnvVar, e.Value, e.Err)
}

// Unwrap returns ErrBind and the underlying cause.
func (e *InvalidPortValueError) Unwrap() []error { return []error{ErrBind, e.Err} }

// RuntimeConfig holds the per-launch settings resolved from the environment.
type RuntimeConfig struct {
	// Port is the port the application listens on and the host maps to.
	Port container.NetworkPort
}

// ResolveRuntimeConfig reads the launch settings from the environment via
// lookup (usually os.LookupEnv). An unset or empty PORT falls back to
// defaultPort; a set but malformed PORT is an error rather than a silent
// fallback.
func ResolveRuntimeConfig(lookup func(string) (string, bool), defaultPort container.NetworkPort) (RuntimeConfig, error) {
	raw, ok := lookup(PortEnvVar)
	if !ok || raw == "" {
		if err := defaultPort.Validate(); err != nil {
			return RuntimeConfig{}, err
		}
		return RuntimeConfig{Port: defaultPort}, nil
	}

	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return RuntimeConfig{}, &InvalidPortValueError{Value: raw, Err: err}
	}

	port := container.NetworkPort(n)
	if err := port.Validate(); err != nil {
		return RuntimeConfig{}, &InvalidPortValueError{Value: raw, Err: err}
	}
	return RuntimeConfig{Port: port}, nil
}

// ResolveRuntimeConfigFromEnv is ResolveRuntimeConfig against the process
// environment.
func ResolveRuntimeConfigFromEnv(defaultPort container.NetworkPort) (RuntimeConfig, error) {
	return ResolveRuntimeConfig(os.LookupEnv, defaultPort)
}
