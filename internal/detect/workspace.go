// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"workscope-cli/internal/cache"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/scan"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

// Workspace indicator file names.
const (
	PnpmWorkspaceYAML = "pnpm-workspace.yaml"
	NxJSON            = "nx.json"
	LernaJSON         = "lerna.json"
	TurboJSON         = "turbo.json"
)

// workspaceIndicators lists indicator files in precedence order. When a
// directory carries several (a turborepo on top of pnpm workspaces is
// common), the first match wins.
var workspaceIndicators = []struct {
	file string
	kind ecosystem.WorkspaceKind
}{
	{PnpmWorkspaceYAML, ecosystem.KindPnpm},
	{NxJSON, ecosystem.KindNx},
	{LernaJSON, ecosystem.KindLerna},
	{TurboJSON, ecosystem.KindTurborepo},
}

// findWorkspaceRoot walks upward from start looking for a workspace
// indicator, returning the nearest ancestor that carries one. Without a
// hit the starting directory itself is the root, with kind none.
func (d *Detector) findWorkspaceRoot(start types.FilesystemPath) (types.FilesystemPath, ecosystem.WorkspaceKind) {
	maxDepth := d.MaxWalkDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxWalkDepth
	}

	dir := fspath.Clean(start)
	for depth := 0; depth < maxDepth; depth++ {
		if kind, ok := workspaceKindAt(dir); ok {
			return dir, kind
		}

		parent := fspath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return fspath.Clean(start), ecosystem.KindNone
}

// findProjectDir walks upward from start to the nearest directory with
// manifest evidence, falling back to start itself when the whole walk
// comes up empty.
func (d *Detector) findProjectDir(start types.FilesystemPath) types.FilesystemPath {
	maxDepth := d.MaxWalkDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxWalkDepth
	}

	dir := fspath.Clean(start)
	for depth := 0; depth < maxDepth; depth++ {
		if !scan.Scan(dir).IsEmpty() {
			return dir
		}

		parent := fspath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return fspath.Clean(start)
}

// workspaceKindAt checks one directory for workspace indicators.
func workspaceKindAt(dir types.FilesystemPath) (ecosystem.WorkspaceKind, bool) {
	for _, ind := range workspaceIndicators {
		if fileExists(fspath.JoinStr(dir, ind.file)) {
			return ind.kind, true
		}
	}
	// A package.json "workspaces" field marks a yarn/npm-style workspace
	// even without a dedicated indicator file.
	if pats := packageJSONWorkspaces(dir); len(pats) > 0 {
		return ecosystem.KindYarn, true
	}
	return ecosystem.KindNone, false
}

// enumerateMembers resolves the member package directories of a workspace
// root, following the workspace tool's own convention. Patterns that
// resolve to nothing are skipped silently; a pattern list that cannot be
// read at all yields no members and the caller degrades to the starting
// directory.
func (d *Detector) enumerateMembers(root types.FilesystemPath, kind ecosystem.WorkspaceKind) []types.FilesystemPath {
	var patterns []string

	switch kind {
	case ecosystem.KindPnpm:
		patterns = pnpmWorkspacePackages(root)
	case ecosystem.KindYarn, ecosystem.KindTurborepo:
		patterns = packageJSONWorkspaces(root)
		if len(patterns) == 0 {
			// Turborepo on top of pnpm declares members in
			// pnpm-workspace.yaml instead.
			patterns = pnpmWorkspacePackages(root)
		}
	case ecosystem.KindLerna:
		patterns = lernaPackages(root)
	case ecosystem.KindNx:
		// Nx has no single member list; it layers on whatever package
		// manager workspace is present, defaulting to conventional
		// layout directories.
		patterns = packageJSONWorkspaces(root)
		if len(patterns) == 0 {
			patterns = pnpmWorkspacePackages(root)
		}
		if len(patterns) == 0 {
			patterns = []string{"apps/*", "libs/*", "packages/*"}
		}
	}

	return expandMemberGlobs(root, patterns)
}

// expandMemberGlobs resolves member glob patterns against the workspace
// root, keeping only real directories and skipping dependency and state
// directories.
func expandMemberGlobs(root types.FilesystemPath, patterns []string) []types.FilesystemPath {
	seen := map[string]bool{}
	var members []types.FilesystemPath

	for _, pat := range patterns {
		// Exclusion patterns ("!**/test") would require full glob set
		// arithmetic; members they would remove are rare enough that
		// skipping the exclusion is the safer degradation.
		if strings.HasPrefix(pat, "!") {
			continue
		}

		matches, err := filepath.Glob(filepath.Join(root.String(), filepath.FromSlash(pat)))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			base := filepath.Base(match)
			if base == "node_modules" || base == cache.StateDirName || strings.HasPrefix(base, ".") {
				continue
			}
			seen[match] = true
			members = append(members, types.FilesystemPath(match))
		}
	}

	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}

// pnpmWorkspacePackages reads the packages list from pnpm-workspace.yaml.
func pnpmWorkspacePackages(root types.FilesystemPath) []string {
	data, err := os.ReadFile(fspath.JoinStr(root, PnpmWorkspaceYAML).String())
	if err != nil {
		return nil
	}

	var manifest struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	return manifest.Packages
}

// packageJSONWorkspaces reads the workspaces field from package.json,
// accepting both the bare-array and the object form.
func packageJSONWorkspaces(dir types.FilesystemPath) []string {
	data, err := os.ReadFile(fspath.JoinStr(dir, "package.json").String())
	if err != nil {
		return nil
	}

	var manifest struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || len(manifest.Workspaces) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(manifest.Workspaces, &list); err == nil {
		return list
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(manifest.Workspaces, &obj); err == nil {
		return obj.Packages
	}
	return nil
}

// lernaPackages reads the packages list from lerna.json, defaulting to
// lerna's own documented default when the field is absent.
func lernaPackages(root types.FilesystemPath) []string {
	data, err := os.ReadFile(fspath.JoinStr(root, LernaJSON).String())
	if err != nil {
		return nil
	}

	var manifest struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	if len(manifest.Packages) == 0 {
		return []string{"packages/*"}
	}
	return manifest.Packages
}

func fileExists(path types.FilesystemPath) bool {
	info, err := os.Stat(path.String())
	return err == nil && !info.IsDir()
}
