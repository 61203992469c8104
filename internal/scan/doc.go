// SPDX-License-Identifier: MPL-2.0

// Package scan reads a single directory for known ecosystem indicator files
// and reports raw per-ecosystem evidence.
//
// The scanner is deliberately shallow: one os.ReadDir of the given
// directory, name matching against a declarative indicator table, no
// recursion and no file-content inspection. Recursing into workspace
// members is the detector's responsibility, and content-derived facets
// (poetry vs uv, multi-module Maven) are layered on by the detector's
// enrichment pass.
package scan
