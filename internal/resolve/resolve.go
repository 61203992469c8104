// SPDX-License-Identifier: MPL-2.0

// Package resolve layers configuration from global, workspace, and package
// scope into one effective settings map.
//
// Precedence, highest first: package settings, workspace settings, global
// settings. Nested maps merge; arrays and scalars from a higher layer
// replace the lower layer's value outright. A missing layer contributes
// nothing; a malformed layer is skipped with a warning rather than failing
// resolution, so one broken settings file never takes the whole engine
// down.
package resolve

import (
	"encoding/json"
	"fmt"
	"os"

	"workscope-cli/internal/cache"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

// SettingsFileName is the per-scope settings file, stored directly in the
// config directory for global scope and under the state directory for
// workspace/package scope.
const SettingsFileName = "settings.json"

// Layer scope labels, used in warnings and the doctor report.
const (
	ScopeGlobal    = "global"
	ScopeWorkspace = "workspace"
	ScopePackage   = "package"
)

type (
	// Layer is one configuration source that contributed to a resolution.
	Layer struct {
		// Scope is one of the Scope* labels.
		Scope string
		// Path is the settings file the layer was read from.
		Path types.FilesystemPath
		// Values holds the layer's parsed settings, nil when the file was
		// absent or malformed.
		Values map[string]any
	}

	// Resolved is the outcome of a resolution: the effective settings plus
	// the per-layer breakdown and any warnings raised along the way.
	Resolved struct {
		// Values is the merged effective configuration.
		Values map[string]any
		// Layers lists the consulted layers, lowest precedence first.
		Layers []Layer
		// Warnings describes layers that were skipped (malformed JSON,
		// unreadable files).
		Warnings []string
	}

	// Resolver resolves effective configuration for a package directory.
	Resolver struct {
		// GlobalSettingsPath locates the user-global settings file.
		// Empty disables the global layer.
		GlobalSettingsPath types.FilesystemPath
	}
)

// ScopedSettingsPath returns the settings file location for a workspace or
// package directory.
func ScopedSettingsPath(dir types.FilesystemPath) types.FilesystemPath {
	return fspath.JoinStr(dir, cache.StateDirName, SettingsFileName)
}

// Resolve merges the three configuration scopes for one package directory.
// workspaceRoot may equal pkgDir (single-package tree); the duplicate layer
// is then consulted once.
func (r *Resolver) Resolve(workspaceRoot, pkgDir types.FilesystemPath) Resolved {
	var res Resolved

	if r.GlobalSettingsPath != "" {
		res.addLayer(ScopeGlobal, r.GlobalSettingsPath)
	}
	res.addLayer(ScopeWorkspace, ScopedSettingsPath(workspaceRoot))
	if fspath.Clean(pkgDir) != fspath.Clean(workspaceRoot) {
		res.addLayer(ScopePackage, ScopedSettingsPath(pkgDir))
	}

	values := make([]map[string]any, 0, len(res.Layers))
	for _, layer := range res.Layers {
		values = append(values, layer.Values)
	}
	res.Values = MergeLayers(values...)
	return res
}

// addLayer loads one settings file into the resolution, recording a
// warning and a nil-valued layer when the file is present but unusable.
func (res *Resolved) addLayer(scope string, path types.FilesystemPath) {
	layer := Layer{Scope: scope, Path: path}

	data, err := os.ReadFile(path.String())
	switch {
	case os.IsNotExist(err):
		// Absent layers are the common case and not worth a warning.
	case err != nil:
		res.Warnings = append(res.Warnings, fmt.Sprintf("reading %s settings %s: %v", scope, path, err))
	default:
		var values map[string]any
		if err := json.Unmarshal(data, &values); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("parsing %s settings %s: %v", scope, path, err))
		} else {
			layer.Values = values
		}
	}

	res.Layers = append(res.Layers, layer)
}

// String renders one layer for diagnostics output.
func (l Layer) String() string {
	state := "loaded"
	if l.Values == nil {
		state = "absent"
	}
	return fmt.Sprintf("%s (%s): %s", l.Scope, state, l.Path)
}
