// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultEntryPoint is the descriptor used when none is configured.
const DefaultEntryPoint = "app:app"

// identifierPattern matches a dotted chain of Python identifiers, which is
// what both the module and attribute parts of a descriptor must be.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ErrInvalidEntryPoint is the sentinel error wrapped by InvalidEntryPointError.
var ErrInvalidEntryPoint = errors.New("invalid entry point")

type (
	// EntryPoint identifies the application object to serve, as a module
	// import path and the attribute inside it ("app:app" style).
	EntryPoint struct {
		// Module is the importable module path, e.g. "app" or "src.main".
		Module string
		// Attribute is the application object inside Module, e.g. "app".
		Attribute string
	}

	// InvalidEntryPointError is returned when an entry point descriptor
	// cannot be parsed. It wraps ErrInvalidEntryPoint.
	InvalidEntryPointError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidEntryPointError) Error() string {
	return fmt.Sprintf("invalid entry point %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidEntryPoint for errors.Is() compatibility.
func (e *InvalidEntryPointError) Unwrap() error { return ErrInvalidEntryPoint }

// ParseEntryPoint parses a "module:attribute" descriptor.
func ParseEntryPoint(descriptor string) (EntryPoint, error) {
	module, attribute, found := strings.Cut(descriptor, ":")
	if !found {
		return EntryPoint{}, &InvalidEntryPointError{
			Value:  descriptor,
			Reason: "expected \"module:attribute\" form",
		}
	}

	ep := EntryPoint{Module: module, Attribute: attribute}
	if err := ep.Validate(); err != nil {
		return EntryPoint{}, err
	}
	return ep, nil
}

// Validate returns an error if either part of the descriptor is not a valid
// dotted identifier.
func (p EntryPoint) Validate() error {
	if !identifierPattern.MatchString(p.Module) {
		return &InvalidEntryPointError{
			Value:  p.String(),
			Reason: "module must be a dotted identifier",
		}
	}
	if !identifierPattern.MatchString(p.Attribute) {
		return &InvalidEntryPointError{
			Value:  p.String(),
			Reason: "attribute must be a dotted identifier",
		}
	}
	return nil
}

// String returns the "module:attribute" form of the descriptor.
func (p EntryPoint) String() string {
	return p.Module + ":" + p.Attribute
}
