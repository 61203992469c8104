// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

const (
	// StrategyContent hashes manifest file contents. Detects reverted
	// edits with identical mtimes at the cost of reading every tracked
	// file.
	StrategyContent HashStrategy = "content"
	// StrategyMtime hashes manifest sizes and modification times. Cheaper
	// on large lockfiles; misses content reverts that preserve mtime.
	StrategyMtime HashStrategy = "mtime"
)

// ErrInvalidHashStrategy is the sentinel error wrapped by InvalidHashStrategyError.
var ErrInvalidHashStrategy = errors.New("invalid hash strategy")

type (
	// ManifestHash is the hex digest computed over every manifest file
	// relevant to a directory's detection. Two scans of an unchanged tree
	// produce the same hash; any edit to a tracked manifest changes it.
	ManifestHash string

	// HashStrategy selects what the manifest digest is computed from.
	HashStrategy string

	// InvalidHashStrategyError is returned when a HashStrategy value is
	// not recognized. It wraps ErrInvalidHashStrategy for errors.Is()
	// compatibility.
	InvalidHashStrategyError struct {
		Value HashStrategy
	}
)

// String returns the string representation of the ManifestHash.
func (h ManifestHash) String() string { return string(h) }

// String returns the string representation of the HashStrategy.
func (s HashStrategy) String() string { return string(s) }

// IsValid returns whether the HashStrategy is one of the defined
// strategies, and a list of validation errors if it is not.
func (s HashStrategy) IsValid() (bool, []error) {
	switch s {
	case StrategyContent, StrategyMtime:
		return true, nil
	default:
		return false, []error{&InvalidHashStrategyError{Value: s}}
	}
}

// Error implements the error interface for InvalidHashStrategyError.
func (e *InvalidHashStrategyError) Error() string {
	return fmt.Sprintf("invalid hash strategy %q (valid: content, mtime)", e.Value)
}

// Unwrap returns ErrInvalidHashStrategy for errors.Is() compatibility.
func (e *InvalidHashStrategyError) Unwrap() error { return ErrInvalidHashStrategy }

// ComputeHash digests the named manifest files under dir using the given
// strategy. Names are sorted before hashing so the digest is independent of
// caller ordering. A manifest that disappears or cannot be read contributes
// only its name, which still distinguishes "file gone" from "file present".
func ComputeHash(dir types.FilesystemPath, manifests []string, strategy HashStrategy) ManifestHash {
	names := make([]string, len(manifests))
	copy(names, manifests)
	sort.Strings(names)

	digest := xxhash.New()
	for _, name := range names {
		// Writes to xxhash.Digest never fail.
		_, _ = digest.WriteString(name)
		_, _ = digest.Write([]byte{0})

		path := fspath.JoinStr(dir, name)
		switch strategy {
		case StrategyMtime:
			writeMtime(digest, path)
		default:
			writeContent(digest, path)
		}
		_, _ = digest.Write([]byte{0})
	}

	return ManifestHash(strconv.FormatUint(digest.Sum64(), 16))
}

// writeContent streams the file's bytes into the digest.
func writeContent(digest *xxhash.Digest, path types.FilesystemPath) {
	f, err := os.Open(path.String())
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = io.Copy(digest, f)
}

// writeMtime folds the file's size and mtime into the digest.
func writeMtime(digest *xxhash.Digest, path types.FilesystemPath) {
	info, err := os.Stat(path.String())
	if err != nil {
		return
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(info.Size()))
	binary.LittleEndian.PutUint64(buf[8:], uint64(info.ModTime().UnixNano()))
	_, _ = digest.Write(buf[:])
}
