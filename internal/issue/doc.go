// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error presentation for slipway.
//
// ActionableError carries structured context (operation, resource,
// suggestions) so the CLI can print errors that tell the user what failed
// and what to do about it. The Issue registry maps the known failure kinds
// of the build-and-launch contract (dependency resolution, toolchain, bind,
// entry point) to markdown help texts rendered with glamour.
package issue
