// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
)

const (
	// IntentInstall resolves/fetches dependencies.
	IntentInstall Intent = "install"
	// IntentBuild produces build artifacts.
	IntentBuild Intent = "build"
	// IntentTest runs the test suite.
	IntentTest Intent = "test"
	// IntentLint runs static analysis.
	IntentLint Intent = "lint"
)

const (
	// PlatformLinux targets POSIX shells on Linux.
	PlatformLinux Platform = "linux"
	// PlatformDarwin targets POSIX shells on macOS.
	PlatformDarwin Platform = "darwin"
	// PlatformWin32 targets cmd/PowerShell on Windows.
	PlatformWin32 Platform = "win32"
)

var (
	// ErrInvalidIntent is the sentinel error wrapped by InvalidIntentError.
	ErrInvalidIntent = errors.New("invalid intent")
	// ErrInvalidPlatform is the sentinel error wrapped by
	// InvalidPlatformError.
	ErrInvalidPlatform = errors.New("invalid platform")
)

type (
	// Intent is the abstract action a generated command performs.
	Intent string

	// Platform is the target platform a command is generated for. The
	// win32 name follows the convention editors report, not GOOS.
	Platform string

	// InvalidIntentError is returned when an Intent is outside the closed
	// vocabulary. It wraps ErrInvalidIntent for errors.Is() compatibility.
	InvalidIntentError struct {
		Value Intent
	}

	// InvalidPlatformError is returned when a Platform is outside the
	// closed vocabulary. It wraps ErrInvalidPlatform for errors.Is()
	// compatibility.
	InvalidPlatformError struct {
		Value Platform
	}
)

// String returns the string representation of the Intent.
func (i Intent) String() string { return string(i) }

// IsValid returns whether the Intent is one of the defined values, and a
// list of validation errors if it is not.
func (i Intent) IsValid() (bool, []error) {
	switch i {
	case IntentInstall, IntentBuild, IntentTest, IntentLint:
		return true, nil
	default:
		return false, []error{&InvalidIntentError{Value: i}}
	}
}

// String returns the string representation of the Platform.
func (p Platform) String() string { return string(p) }

// IsValid returns whether the Platform is one of the defined values, and a
// list of validation errors if it is not.
func (p Platform) IsValid() (bool, []error) {
	switch p {
	case PlatformLinux, PlatformDarwin, PlatformWin32:
		return true, nil
	default:
		return false, []error{&InvalidPlatformError{Value: p}}
	}
}

// GOOS maps the platform to the Go runtime's GOOS name.
func (p Platform) GOOS() string {
	if p == PlatformWin32 {
		return "windows"
	}
	return string(p)
}

// PlatformFromGOOS maps a GOOS name to a Platform, defaulting to linux for
// GOOS values outside the supported set.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return PlatformWin32
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformLinux
	}
}

// Error implements the error interface for InvalidIntentError.
func (e *InvalidIntentError) Error() string {
	return fmt.Sprintf("invalid intent %q", e.Value)
}

// Unwrap returns ErrInvalidIntent for errors.Is() compatibility.
func (e *InvalidIntentError) Unwrap() error { return ErrInvalidIntent }

// Error implements the error interface for InvalidPlatformError.
func (e *InvalidPlatformError) Error() string {
	return fmt.Sprintf("invalid platform %q", e.Value)
}

// Unwrap returns ErrInvalidPlatform for errors.Is() compatibility.
func (e *InvalidPlatformError) Unwrap() error { return ErrInvalidPlatform }
