// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEngineAuto picks whichever engine is available.
	ContainerEngineAuto ContainerEngine = "auto"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value
	// is not recognized. It wraps ErrInvalidContainerEngine.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// Config holds slipway's settings.
	Config struct {
		// ContainerEngine selects docker, podman, or auto-detection.
		ContainerEngine ContainerEngine `mapstructure:"container_engine"`
		// BaseImage is the runtime base image for built artifacts.
		BaseImage string `mapstructure:"base_image"`
		// DefaultPort is the port used when PORT is not set at launch.
		DefaultPort int `mapstructure:"default_port"`
		// EntryPoint is the application entry descriptor ("module:attribute").
		EntryPoint string `mapstructure:"entrypoint"`
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a Config has one or more invalid
	// fields. It wraps the individual field validation errors.
	InvalidConfigError struct {
		FieldErrs []error
	}
)

// Error implements the error interface.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman, auto)", e.Value)
}

// Unwrap returns ErrInvalidContainerEngine for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// String returns the string representation of the ContainerEngine.
func (c ContainerEngine) String() string { return string(c) }

// Validate returns an error if the ContainerEngine is not one of the defined engines.
func (c ContainerEngine) Validate() error {
	switch c {
	case ContainerEnginePodman, ContainerEngineDocker, ContainerEngineAuto:
		return nil
	default:
		return &InvalidContainerEngineError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrs))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate returns an error if any Config field is invalid.
func (c *Config) Validate() error {
	var errs []error
	if err := c.ContainerEngine.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.BaseImage == "" {
		errs = append(errs, errors.New("base_image must be non-empty"))
	}
	if c.DefaultPort < 1 || c.DefaultPort > 65535 {
		errs = append(errs, fmt.Errorf("default_port %d out of range 1-65535", c.DefaultPort))
	}
	if c.EntryPoint == "" {
		errs = append(errs, errors.New("entrypoint must be non-empty"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrs: errs}
	}
	return nil
}

// DefaultConfig returns a Config with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineAuto,
		BaseImage:       "python:3.11-slim",
		DefaultPort:     8080,
		EntryPoint:      "app:app",
		Verbose:         false,
	}
}
