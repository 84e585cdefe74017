// SPDX-License-Identifier: MPL-2.0

// Package build turns an application source tree and its dependency
// manifest into an immutable container image. Dependencies are installed in
// their own image layer before the source tree is overlaid, so rebuilds that
// only touch source reuse the installed dependencies. Build failures are
// classified into dependency resolution and toolchain errors from the
// captured engine output.
package build
