// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and validates the dependency manifest
// (requirements.txt): an ordered list of package/version-constraint pairs,
// one per line. The manifest is read once at build time; the parsed form is
// immutable after that.
package manifest
