// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/scan"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

// enrichTags layers content-derived facets onto the presence-derived tag
// set. Unreadable or malformed manifests contribute nothing; the
// presence-derived tags stand on their own.
func enrichTags(dir types.FilesystemPath, tags []ecosystem.Tag) []ecosystem.Tag {
	present := map[ecosystem.Tag]bool{}
	for _, tag := range tags {
		present[tag] = true
	}

	if present[ecosystem.TagPython] {
		poetry, uv := pyprojectTools(dir)
		if poetry && !present[ecosystem.TagPoetry] {
			tags = append(tags, ecosystem.TagPoetry)
			present[ecosystem.TagPoetry] = true
		}
		if uv && !present[ecosystem.TagUV] {
			tags = append(tags, ecosystem.TagUV)
			present[ecosystem.TagUV] = true
		}
	}

	if present[ecosystem.TagMaven] && pomDeclaresModules(dir) {
		if !present[ecosystem.TagMavenMultiModule] {
			tags = append(tags, ecosystem.TagMavenMultiModule)
		}
	}

	return tags
}

// pyprojectTools reports whether pyproject.toml carries [tool.poetry] or
// [tool.uv] tables.
func pyprojectTools(dir types.FilesystemPath) (poetry, uv bool) {
	data, err := os.ReadFile(fspath.JoinStr(dir, scan.PyprojectTOML).String())
	if err != nil {
		return false, false
	}

	var doc struct {
		Tool map[string]any `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return false, false
	}
	_, poetry = doc.Tool["poetry"]
	_, uv = doc.Tool["uv"]
	return poetry, uv
}

// pomDeclaresModules reports whether pom.xml aggregates sub-modules. A
// plain substring check is deliberate: parsing arbitrary POMs with a full
// XML decoder buys nothing here, and the element name cannot appear in a
// single-module POM outside comments.
func pomDeclaresModules(dir types.FilesystemPath) bool {
	data, err := os.ReadFile(fspath.JoinStr(dir, scan.PomXML).String())
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte("<modules>"))
}

// packageName resolves a package's display name: the name declared in its
// primary manifest when one exists, otherwise the directory base name.
func packageName(dir types.FilesystemPath, tags []ecosystem.Tag) string {
	for _, tag := range tags {
		switch tag.Family() {
		case ecosystem.FamilyNode:
			if name := packageJSONName(dir); name != "" {
				return name
			}
		case ecosystem.FamilyPython:
			if name := pyprojectName(dir); name != "" {
				return name
			}
		case ecosystem.FamilyRust:
			if name := cargoName(dir); name != "" {
				return name
			}
		}
	}
	return filepath.Base(dir.String())
}

func packageJSONName(dir types.FilesystemPath) string {
	data, err := os.ReadFile(fspath.JoinStr(dir, scan.PackageJSON).String())
	if err != nil {
		return ""
	}
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

func pyprojectName(dir types.FilesystemPath) string {
	data, err := os.ReadFile(fspath.JoinStr(dir, scan.PyprojectTOML).String())
	if err != nil {
		return ""
	}
	var manifest struct {
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Name string `toml:"name"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	if manifest.Project.Name != "" {
		return manifest.Project.Name
	}
	return manifest.Tool.Poetry.Name
}

func cargoName(dir types.FilesystemPath) string {
	data, err := os.ReadFile(fspath.JoinStr(dir, scan.CargoTOML).String())
	if err != nil {
		return ""
	}
	var manifest struct {
		Package struct {
			Name string `toml:"name"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Package.Name
}

// nodeLockManagers maps node lockfile names to the manager that writes
// them, in inference precedence order.
var nodeLockManagers = []struct {
	lock    string
	manager string
}{
	{scan.PnpmLock, "pnpm"},
	{scan.YarnLock, "yarn"},
	{scan.BunLock, "bun"},
	{scan.NpmLock, "npm"},
}

// inferPackageManager infers the package manager for a package directory
// from declared fields and lockfile presence. The primary (first) tag's
// family drives the inference; an empty result means nothing could be
// inferred.
func inferPackageManager(dir types.FilesystemPath, tags []ecosystem.Tag) string {
	if len(tags) == 0 {
		return ""
	}

	switch tags[0].Family() {
	case ecosystem.FamilyNode:
		return inferNodeManager(dir)
	case ecosystem.FamilyPython:
		return inferPythonManager(dir, tags)
	case ecosystem.FamilyJVM:
		if tags[0] == ecosystem.TagMaven {
			return "maven"
		}
		return "gradle"
	case ecosystem.FamilyRust:
		return "cargo"
	case ecosystem.FamilyGo:
		return "go"
	case ecosystem.FamilyDotnet:
		return "dotnet"
	}
	return ""
}

// inferNodeManager prefers the manifest's own packageManager declaration
// (corepack style, "pnpm@9.1.0") over lockfile presence, falling back to
// npm when neither decides.
func inferNodeManager(dir types.FilesystemPath) string {
	data, err := os.ReadFile(fspath.JoinStr(dir, scan.PackageJSON).String())
	if err == nil {
		var manifest struct {
			PackageManager string `json:"packageManager"`
		}
		if err := json.Unmarshal(data, &manifest); err == nil && manifest.PackageManager != "" {
			name, _, _ := strings.Cut(manifest.PackageManager, "@")
			if name != "" {
				return name
			}
		}
	}

	for _, lm := range nodeLockManagers {
		if fileExists(fspath.JoinStr(dir, lm.lock)) {
			return lm.manager
		}
	}
	return "npm"
}

func inferPythonManager(dir types.FilesystemPath, tags []ecosystem.Tag) string {
	for _, tag := range tags {
		switch tag {
		case ecosystem.TagUV:
			return "uv"
		case ecosystem.TagPoetry:
			return "poetry"
		}
	}
	if fileExists(fspath.JoinStr(dir, scan.Pipfile)) || fileExists(fspath.JoinStr(dir, scan.PipfileLock)) {
		return "pipenv"
	}
	return "pip"
}
