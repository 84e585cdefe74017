// SPDX-License-Identifier: MPL-2.0

// Package config loads slipway's configuration: a YAML file at
// $XDG_CONFIG_HOME/slipway/config.yaml (or the platform equivalent), layered
// with SLIPWAY_* environment variables and built-in defaults. Configuration
// is read once at startup and passed down as a value; nothing re-reads the
// environment afterwards.
package config
