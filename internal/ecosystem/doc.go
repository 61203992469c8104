// SPDX-License-Identifier: MPL-2.0

// Package ecosystem defines the closed vocabulary of technology facets the
// engine can detect (tags), the families that group them, and the workspace
// tool kinds. Tags are produced by detection and never mutated; a detection
// result is an immutable ordered set of tags plus the directory it describes.
//
// The vocabulary is a closed enumeration rather than free-form strings so
// that consumers can switch exhaustively, with UnknownTag round-tripping as
// the forward-compatibility escape hatch for values written by newer
// versions of the engine.
package ecosystem
