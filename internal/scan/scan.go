// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"os"
	"sort"
	"strings"

	"workscope-cli/internal/ecosystem"
	"workscope-cli/pkg/platform"
	"workscope-cli/pkg/types"
)

// Manifest file name constants shared with the detector and cache.
const (
	PackageJSON       = "package.json"
	PyprojectTOML     = "pyproject.toml"
	SetupPy           = "setup.py"
	RequirementsTxt   = "requirements.txt"
	PomXML            = "pom.xml"
	BuildGradle       = "build.gradle"
	BuildGradleKts    = "build.gradle.kts"
	SettingsGradle    = "settings.gradle"
	SettingsGradleKts = "settings.gradle.kts"
	CargoTOML         = "Cargo.toml"
	GoMod             = "go.mod"

	// Lockfiles tracked for hashing and package-manager inference.
	PnpmLock    = "pnpm-lock.yaml"
	YarnLock    = "yarn.lock"
	NpmLock     = "package-lock.json"
	BunLock     = "bun.lockb"
	UvLock      = "uv.lock"
	PoetryLock  = "poetry.lock"
	Pipfile     = "Pipfile"
	PipfileLock = "Pipfile.lock"
	CargoLock   = "Cargo.lock"
	GoSum       = "go.sum"
)

// indicator maps one file name to the tag its presence implies.
type indicator struct {
	name string
	tag  ecosystem.Tag
}

// indicators is the declarative detection table. Order is irrelevant here:
// the detector emits tags in ecosystem.Sort order regardless of which
// indicator matched first.
var indicators = []indicator{
	{PackageJSON, ecosystem.TagNodeJS},
	{PyprojectTOML, ecosystem.TagPython},
	{SetupPy, ecosystem.TagPython},
	{RequirementsTxt, ecosystem.TagPython},
	{UvLock, ecosystem.TagUV},
	{PoetryLock, ecosystem.TagPoetry},
	{PomXML, ecosystem.TagMaven},
	{platform.MavenWrapperUnix, ecosystem.TagMavenWrapper},
	{platform.MavenWrapperWindows, ecosystem.TagMavenWrapper},
	{BuildGradle, ecosystem.TagGradle},
	{SettingsGradle, ecosystem.TagGradle},
	{BuildGradleKts, ecosystem.TagGradleKotlinDSL},
	{SettingsGradleKts, ecosystem.TagGradleKotlinDSL},
	{platform.GradleWrapperUnix, ecosystem.TagGradleWrapper},
	{platform.GradleWrapperWindows, ecosystem.TagGradleWrapper},
	{CargoTOML, ecosystem.TagRust},
	{GoMod, ecosystem.TagGo},
}

// lockfiles are tracked as hash inputs even when they imply no tag of
// their own (edits to them must invalidate the cached detection).
var lockfiles = map[string]bool{
	PnpmLock:    true,
	YarnLock:    true,
	NpmLock:     true,
	BunLock:     true,
	UvLock:      true,
	PoetryLock:  true,
	Pipfile:     true,
	PipfileLock: true,
	CargoLock:   true,
	GoSum:       true,
}

// Evidence is the raw result of scanning one directory: which tags have at
// least one indicator file present, and the sorted list of manifest file
// names that detection depends on (the hash inputs).
type Evidence struct {
	// Dir is the directory that was scanned.
	Dir types.FilesystemPath
	// Present maps each tag to whether an indicator for it was found.
	Present map[ecosystem.Tag]bool
	// Manifests lists the manifest/lockfile names found, sorted.
	Manifests []string
}

// IsEmpty reports whether the scan found no indicators at all.
func (e Evidence) IsEmpty() bool { return len(e.Present) == 0 }

// Scan reads dir once and matches entry names against the indicator table.
// An unreadable directory (missing, permission denied) yields empty
// Evidence rather than an error, so one inaccessible subtree never aborts
// a larger detection pass.
func Scan(dir types.FilesystemPath) Evidence {
	ev := Evidence{Dir: dir, Present: map[ecosystem.Tag]bool{}}

	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return ev
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names[entry.Name()] = true
	}

	for _, ind := range indicators {
		if names[ind.name] {
			ev.Present[ind.tag] = true
			ev.Manifests = append(ev.Manifests, ind.name)
		}
	}

	// .NET projects are named after the project, so match by suffix.
	for name := range names {
		if strings.HasSuffix(name, ".csproj") || strings.HasSuffix(name, ".sln") {
			ev.Present[ecosystem.TagDotnet] = true
			ev.Manifests = append(ev.Manifests, name)
		}
		if lockfiles[name] {
			ev.Manifests = append(ev.Manifests, name)
		}
	}

	sort.Strings(ev.Manifests)
	ev.Manifests = dedupe(ev.Manifests)
	return ev
}

// dedupe removes adjacent duplicates from a sorted slice (an indicator can
// double as a lockfile, e.g. uv.lock).
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
