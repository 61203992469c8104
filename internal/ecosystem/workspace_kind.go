// SPDX-License-Identifier: MPL-2.0

package ecosystem

import (
	"errors"
	"fmt"
)

const (
	// KindNone marks a single-project tree with no workspace tool.
	KindNone WorkspaceKind = "none"
	// KindPnpm marks a pnpm workspace (pnpm-workspace.yaml).
	KindPnpm WorkspaceKind = "pnpm"
	// KindNx marks an Nx workspace (nx.json).
	KindNx WorkspaceKind = "nx"
	// KindLerna marks a Lerna workspace (lerna.json).
	KindLerna WorkspaceKind = "lerna"
	// KindYarn marks a Yarn workspace (workspaces field in package.json).
	KindYarn WorkspaceKind = "yarn"
	// KindTurborepo marks a Turborepo workspace (turbo.json).
	KindTurborepo WorkspaceKind = "turborepo"
)

// ErrInvalidWorkspaceKind is the sentinel error wrapped by InvalidWorkspaceKindError.
var ErrInvalidWorkspaceKind = errors.New("invalid workspace kind")

type (
	// WorkspaceKind identifies which multi-package tool manages a
	// repository root, or KindNone for a single-project tree.
	WorkspaceKind string

	// InvalidWorkspaceKindError is returned when a WorkspaceKind value is
	// not recognized. It wraps ErrInvalidWorkspaceKind for errors.Is()
	// compatibility.
	InvalidWorkspaceKindError struct {
		Value WorkspaceKind
	}
)

// String returns the string representation of the WorkspaceKind.
func (k WorkspaceKind) String() string { return string(k) }

// IsValid returns whether the WorkspaceKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k WorkspaceKind) IsValid() (bool, []error) {
	switch k {
	case KindNone, KindPnpm, KindNx, KindLerna, KindYarn, KindTurborepo:
		return true, nil
	default:
		return false, []error{&InvalidWorkspaceKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidWorkspaceKindError.
func (e *InvalidWorkspaceKindError) Error() string {
	return fmt.Sprintf("invalid workspace kind %q (valid: none, pnpm, nx, lerna, yarn, turborepo)", e.Value)
}

// Unwrap returns ErrInvalidWorkspaceKind for errors.Is() compatibility.
func (e *InvalidWorkspaceKindError) Unwrap() error { return ErrInvalidWorkspaceKind }
