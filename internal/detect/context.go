// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"strings"

	"workscope-cli/internal/ecosystem"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

type (
	// WorkspaceContext is the full answer for one starting directory:
	// the workspace root (or the starting directory itself when no
	// workspace tool manages the tree), the managing tool, and the
	// member packages.
	WorkspaceContext struct {
		// Root is the workspace root, or the nearest project directory
		// for kind none.
		Root types.FilesystemPath
		// Kind identifies the workspace tool, or KindNone.
		Kind ecosystem.WorkspaceKind
		// Packages are the workspace members, or the single project
		// directory for kind none.
		Packages []Package
	}

	// Package is one workspace member (or the sole project directory
	// when there is no workspace).
	Package struct {
		// Name is the package's declared name, or the directory base
		// name when no manifest declares one.
		Name string
		// Path is the package directory.
		Path types.FilesystemPath
		// Tags is the ordered tag set detected for the package
		// directory.
		Tags []ecosystem.Tag
		// PackageManager is the inferred manager ("pnpm", "uv",
		// "maven", ...), empty when nothing could be inferred.
		PackageManager string
	}
)

// IsWorkspace reports whether a workspace tool manages the tree.
func (c WorkspaceContext) IsWorkspace() bool {
	return c.Kind != ecosystem.KindNone
}

// PackageFor returns the member package whose directory most closely
// encloses filePath, resolving nested manifests to the closest enclosing
// package. The second return is false when no member encloses the path.
func (c WorkspaceContext) PackageFor(filePath types.FilesystemPath) (Package, bool) {
	cleaned := fspath.Clean(filePath).String()

	best := -1
	bestLen := -1
	for i, pkg := range c.Packages {
		prefix := fspath.Clean(pkg.Path).String()
		if cleaned != prefix && !strings.HasPrefix(cleaned, prefix+string(separator)) {
			continue
		}
		if len(prefix) > bestLen {
			best = i
			bestLen = len(prefix)
		}
	}
	if best < 0 {
		return Package{}, false
	}
	return c.Packages[best], true
}
