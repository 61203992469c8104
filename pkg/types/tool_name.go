// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidToolName is the sentinel error wrapped by InvalidToolNameError.
var ErrInvalidToolName = errors.New("invalid tool name")

// toolNamePattern constrains tool names to characters that are safe for
// PATH lookups and shell interpolation.
var toolNamePattern = regexp.MustCompile(`^[A-Za-z0-9._+\-/]+$`)

type (
	// ToolName identifies an executable to look up on PATH (e.g. "npm",
	// "mvn", "cargo"). Valid names are non-empty and contain only
	// shell-safe characters.
	ToolName string

	// InvalidToolNameError is returned when a ToolName value is empty or
	// contains characters unsafe for shell interpolation.
	InvalidToolNameError struct {
		Value ToolName
	}
)

// String returns the string representation of the ToolName.
func (n ToolName) String() string { return string(n) }

// IsValid returns whether the ToolName is valid.
// A valid name is non-empty and matches the shell-safe character set.
func (n ToolName) IsValid() (bool, []error) {
	if !toolNamePattern.MatchString(string(n)) {
		return false, []error{&InvalidToolNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolNameError.
func (e *InvalidToolNameError) Error() string {
	return fmt.Sprintf("invalid tool name %q: must be non-empty and shell-safe", e.Value)
}

// Unwrap returns ErrInvalidToolName for errors.Is() compatibility.
func (e *InvalidToolNameError) Unwrap() error { return ErrInvalidToolName }
