// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"slipway-cli/internal/issue"
)

// FileName is the conventional manifest file name inside a source tree.
const FileName = "requirements.txt"

// constraintOperators are tried longest-first so "==" wins over "=".
var constraintOperators = []string{"==", ">=", "<=", "~=", "!=", "<", ">"}

var (
	// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
	ErrInvalidPackageName = errors.New("invalid package name")

	// ErrInvalidConstraint is the sentinel error wrapped by InvalidConstraintError.
	ErrInvalidConstraint = errors.New("invalid version constraint")

	// ErrDuplicatePackage is the sentinel error wrapped by DuplicatePackageError.
	ErrDuplicatePackage = errors.New("duplicate package")

	// packageNamePattern follows the PEP 508 name grammar: alphanumeric with
	// interior dots, hyphens, and underscores.
	packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

	// versionPattern accepts release segments with optional pre/post/dev
	// suffixes and trailing wildcards (e.g. "2.0.*").
	versionPattern = regexp.MustCompile(`^[0-9A-Za-z.*+!-]+$`)
)

type (
	// PackageName is a third-party package name from the manifest.
	PackageName string

	// InvalidPackageNameError is returned when a PackageName does not match
	// the accepted name grammar.
	InvalidPackageNameError struct {
		Value PackageName
	}

	// Constraint is a version constraint: an operator plus a version
	// (e.g. "==2.0.0"). The zero value ("") is valid and means "any version".
	Constraint string

	// InvalidConstraintError is returned when a Constraint has an operator
	// with a missing or malformed version.
	InvalidConstraintError struct {
		Value Constraint
	}

	// DuplicatePackageError is returned when a manifest lists the same
	// package twice.
	DuplicatePackageError struct {
		Name PackageName
		Line int
	}

	// Entry is a single manifest line: a package and its version constraint.
	Entry struct {
		Name       PackageName
		Constraint Constraint
		// Line is the 1-based line number the entry came from.
		Line int
	}

	// Manifest is the parsed, ordered dependency manifest.
	Manifest struct {
		// Path is the file the manifest was read from ("" when parsed from memory).
		Path string
		// Entries preserves the file order.
		Entries []Entry
	}

	// ParseError reports a malformed manifest line.
	ParseError struct {
		Path string
		Line int
		Text string
		Err  error
	}
)

// Error implements the error interface.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q", e.Value)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// Validate returns an error if the PackageName does not match the name grammar.
func (n PackageName) Validate() error {
	if !packageNamePattern.MatchString(string(n)) {
		return &InvalidPackageNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConstraintError) Error() string {
	return fmt.Sprintf("invalid version constraint %q", e.Value)
}

// Unwrap returns ErrInvalidConstraint for errors.Is() compatibility.
func (e *InvalidConstraintError) Unwrap() error { return ErrInvalidConstraint }

// String returns the string representation of the Constraint.
func (c Constraint) String() string { return string(c) }

// Validate returns an error if the Constraint is malformed.
// The zero value ("") is valid and means any version is acceptable.
func (c Constraint) Validate() error {
	if c == "" {
		return nil
	}
	for _, op := range constraintOperators {
		rest, ok := strings.CutPrefix(string(c), op)
		if !ok {
			continue
		}
		if rest == "" || !versionPattern.MatchString(rest) {
			return &InvalidConstraintError{Value: c}
		}
		return nil
	}
	return &InvalidConstraintError{Value: c}
}

// Error implements the error interface.
func (e *DuplicatePackageError) Error() string {
	return fmt.Sprintf("duplicate package %q at line %d", e.Name, e.Line)
}

// Unwrap returns ErrDuplicatePackage for errors.Is() compatibility.
func (e *DuplicatePackageError) Unwrap() error { return ErrDuplicatePackage }

// Specifier returns the pip requirement specifier for the entry
// (e.g. "flask==2.0.0", or just "flask" when unconstrained).
func (e Entry) Specifier() string {
	return string(e.Name) + string(e.Constraint)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = FileName
	}
	return fmt.Sprintf("%s:%d: cannot parse %q: %v", path, e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, issue.NewErrorContext().
				WithOperation("read dependency manifest").
				WithResource(path).
				WithSuggestion("Create a requirements.txt in the source directory").
				WithSuggestion("An empty requirements.txt is valid when there are no dependencies").
				Wrap(err).
				BuildError()
		}
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	m, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse reads manifest entries from r. Blank lines and '#' comments are
// skipped; entry order is preserved. Package names are compared
// case-insensitively for duplicate detection, following index conventions.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Strip trailing comments, then surrounding whitespace.
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, err := parseLine(line, lineNo)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}

		key := strings.ToLower(string(entry.Name))
		if seen[key] {
			return nil, &DuplicatePackageError{Name: entry.Name, Line: lineNo}
		}
		seen[key] = true

		m.Entries = append(m.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return m, nil
}

// parseLine splits a requirement line into name and constraint at the first
// operator occurrence.
func parseLine(line string, lineNo int) (Entry, error) {
	name := line
	constraint := ""

	opIdx := -1
	for i := range line {
		for _, op := range constraintOperators {
			if strings.HasPrefix(line[i:], op) {
				opIdx = i
				break
			}
		}
		if opIdx >= 0 {
			break
		}
	}
	if opIdx >= 0 {
		name = strings.TrimSpace(line[:opIdx])
		constraint = strings.TrimSpace(line[opIdx:])
	}

	entry := Entry{
		Name:       PackageName(name),
		Constraint: Constraint(constraint),
		Line:       lineNo,
	}
	if err := entry.Name.Validate(); err != nil {
		return Entry{}, err
	}
	if err := entry.Constraint.Validate(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// IsEmpty returns true when the manifest declares no dependencies.
// An empty manifest is valid.
func (m *Manifest) IsEmpty() bool {
	return len(m.Entries) == 0
}

// Specifiers returns the pip requirement specifiers in manifest order.
func (m *Manifest) Specifiers() []string {
	specs := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		specs[i] = e.Specifier()
	}
	return specs
}

// Render writes the manifest back out in canonical form, one specifier per
// line. The builder copies this normalized form into the build context so the
// pip layer's cache key depends only on the parsed entries, not on comments
// or whitespace in the original file.
func (m *Manifest) Render() string {
	var sb strings.Builder
	for _, e := range m.Entries {
		sb.WriteString(e.Specifier())
		sb.WriteString("\n")
	}
	return sb.String()
}
