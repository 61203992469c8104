// SPDX-License-Identifier: MPL-2.0

// Package cache persists per-directory detection records keyed by a digest
// of the manifests the detection depended on.
//
// The cache optimizes for speed, not linearizability: the on-disk record is
// replaced wholesale (temp file + rename) so a reader never observes a
// half-written record, and concurrent processes racing to write after
// independent detections settle on last-writer-wins. Staleness is cheaply
// self-correcting — the next read that sees a hash mismatch triggers
// re-detection. Corrupt or schema-mismatched cache files read as absent and
// are silently overwritten by the next successful detection.
package cache
