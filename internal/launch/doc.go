// SPDX-License-Identifier: MPL-2.0

// Package launch starts built application images as foreground containers.
// It resolves the listen port from the process environment, maps it through
// to the host, and classifies startup failures (occupied ports, missing
// entry points) into typed errors that callers can translate to exit codes.
package launch
