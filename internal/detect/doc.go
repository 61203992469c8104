// SPDX-License-Identifier: MPL-2.0

// Package detect answers "what ecosystems live here, and is this a
// multi-package workspace?" for a given directory.
//
// This package intentionally combines two related concerns:
//   - Per-directory tag resolution: scanning evidence, enriching it with
//     content-derived facets, and caching the conclusion keyed by a
//     manifest hash
//   - Workspace resolution: walking upward to find a workspace root and
//     enumerating member packages per the workspace tool's own convention
//
// These concerns are tightly coupled because every workspace member's tag
// list is itself a cached per-directory detection. Splitting them would
// create unnecessary indirection without meaningful abstraction benefit.
//
// File organization:
//   - detect.go: Detector and per-directory tag resolution
//   - workspace.go: workspace-root discovery and member enumeration
//   - context.go: WorkspaceContext / Package result types
//   - enrich.go: content-derived facets and package-manager inference
package detect
