// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for slipway.
//
// This package implements the Cobra command hierarchy: the root command and
// the build, launch, and up subcommands that package application source
// trees into container images and serve them.
package cmd
