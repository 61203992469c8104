// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"workscope-cli/internal/cache"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/scan"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

// separator is the OS path separator as a rune, used for prefix checks.
const separator = filepath.Separator

// defaultMaxWalkDepth bounds the upward workspace-root walk so unusual
// mount layouts (bind-mount cycles, very deep automount trees) cannot
// stall a hook invocation.
const defaultMaxWalkDepth = 64

// Detector resolves ecosystem tags and workspace structure for
// directories. Zero-value fields are replaced with production defaults by
// New; tests override the exported fields directly.
type Detector struct {
	// Store persists per-directory detection records.
	Store cache.Store
	// Strategy selects the manifest hash input (content or mtime).
	Strategy cache.HashStrategy
	// MaxWalkDepth bounds the upward workspace-root walk.
	MaxWalkDepth int
	// Now supplies record timestamps.
	Now func() time.Time
	// Logger receives cache diagnostics. Detection never fails on cache
	// trouble; it logs and re-scans.
	Logger *log.Logger
}

// New creates a Detector backed by the given record store.
func New(store cache.Store) *Detector {
	return &Detector{
		Store:        store,
		Strategy:     cache.StrategyContent,
		MaxWalkDepth: defaultMaxWalkDepth,
		Now:          time.Now,
		Logger:       log.New(io.Discard),
	}
}

// TagsFor resolves the ordered tag set for one directory, consulting the
// record store first. A stored record is reused only when its manifest
// hash matches the live tree; otherwise the directory is re-scanned and
// the record replaced wholesale.
func (d *Detector) TagsFor(dir types.FilesystemPath) []ecosystem.Tag {
	ev := scan.Scan(dir)
	live := cache.ComputeHash(dir, ev.Manifests, d.Strategy)

	if rec, ok := d.Store.Get(dir); ok {
		if rec.Hash == live {
			return rec.Tags
		}
		d.Logger.Debug("manifest hash diverged, re-detecting", "dir", dir, "stored", rec.Hash, "live", live)
	}

	tags := tagsFromEvidence(ev)

	rec := cache.Record{
		Tags:       tags,
		Hash:       live,
		DetectedAt: d.Now(),
		Directory:  dir,
	}
	if err := d.Store.Put(dir, rec); err != nil {
		// The cache is an optimization; a failed write must never fail
		// detection.
		d.Logger.Warn("failed to persist detection record", "dir", dir, "err", err)
	}

	return tags
}

// Detect resolves the full workspace context for a starting directory.
func (d *Detector) Detect(startDir types.FilesystemPath) (WorkspaceContext, error) {
	start, err := fspath.Abs(startDir)
	if err != nil {
		return WorkspaceContext{}, err
	}

	// The start directory's own tags are resolved and cached before the
	// workspace walk, so querying a workspace root records the root's
	// detection too, not only the members'.
	startTags := d.TagsFor(start)

	root, kind := d.findWorkspaceRoot(start)

	ctx := WorkspaceContext{Root: root, Kind: kind}
	if kind == ecosystem.KindNone {
		if len(startTags) > 0 {
			ctx.Root = start
			ctx.Packages = []Package{d.packageAt(start)}
			return ctx, nil
		}
		// No manifests here and no workspace tool above; anchor on the
		// nearest ancestor that carries project manifests (editing
		// src/main.rs should still resolve to the Cargo.toml directory
		// above it).
		proj := d.findProjectDir(start)
		ctx.Root = proj
		ctx.Packages = []Package{d.packageAt(proj)}
		return ctx, nil
	}

	members := d.enumerateMembers(root, kind)
	if len(members) == 0 {
		// A workspace manifest with no resolvable members still scopes
		// config to its root; fall back to the starting directory as
		// the sole package.
		members = []types.FilesystemPath{start}
	}
	for _, member := range members {
		ctx.Packages = append(ctx.Packages, d.packageAt(member))
	}
	return ctx, nil
}

// packageAt builds the Package value for one member directory.
func (d *Detector) packageAt(dir types.FilesystemPath) Package {
	tags := d.TagsFor(dir)
	return Package{
		Name:           packageName(dir, tags),
		Path:           dir,
		Tags:           tags,
		PackageManager: inferPackageManager(dir, tags),
	}
}

// tagsFromEvidence converts raw scan evidence into the canonical ordered
// tag list, layering on content-derived facets (poetry/uv from
// pyproject.toml, multi-module from pom.xml).
func tagsFromEvidence(ev scan.Evidence) []ecosystem.Tag {
	tags := make([]ecosystem.Tag, 0, len(ev.Present))
	for tag := range ev.Present {
		tags = append(tags, tag)
	}
	tags = enrichTags(ev.Dir, tags)
	ecosystem.Sort(tags)
	return tags
}
