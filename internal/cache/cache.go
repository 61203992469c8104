// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"workscope-cli/internal/ecosystem"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

const (
	// StateDirName is the per-directory metadata directory.
	StateDirName = ".workscope"
	// RecordFileName is the cache file inside StateDirName.
	RecordFileName = "ecosystems.json"
)

// Record is the persisted conclusion of one directory's detection. It is
// created on first detection, read on every subsequent call, and replaced
// wholesale (never patched) when the live manifest hash diverges from the
// stored one. Stale records are superseded, not purged.
type Record struct {
	// Tags is the ordered tag set the directory carried at detection time.
	Tags []ecosystem.Tag `json:"types"`
	// Hash is the manifest digest the tags were derived from.
	Hash ManifestHash `json:"hash"`
	// DetectedAt is when the detection ran.
	DetectedAt time.Time `json:"detectedAt"`
	// Directory is the directory the record describes.
	Directory types.FilesystemPath `json:"directory"`
}

// Store persists detection records per directory. Get returns false for
// any record that cannot be produced — missing, unreadable, or corrupt —
// so callers re-detect instead of failing.
type Store interface {
	Get(dir types.FilesystemPath) (Record, bool)
	Put(dir types.FilesystemPath, rec Record) error
}

// FileStore persists records as JSON files at
// <dir>/.workscope/ecosystems.json. It is the production Store.
type FileStore struct{}

// NewFileStore creates a file-backed record store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// recordPath returns the cache file location for a directory.
func recordPath(dir types.FilesystemPath) types.FilesystemPath {
	return fspath.JoinStr(dir, StateDirName, RecordFileName)
}

// Get reads the record for dir. A file that is missing, unreadable, or
// fails to parse (corrupt JSON, schema mismatch from an older format)
// reads as absent; it is overwritten by the next Put.
func (s *FileStore) Get(dir types.FilesystemPath) (Record, bool) {
	data, err := os.ReadFile(recordPath(dir).String())
	if err != nil {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	if rec.Hash == "" {
		// Older or foreign file shape; treat as absent.
		return Record{}, false
	}
	return rec, true
}

// Put replaces the record for dir wholesale. The JSON is written to a temp
// file in the same directory and renamed into place, so a concurrent
// reader observes either the old record or the new one, never a partial
// write. Concurrent writers race to last-writer-wins.
func (s *FileStore) Put(dir types.FilesystemPath, rec Record) error {
	stateDir := fspath.JoinStr(dir, StateDirName)
	if err := os.MkdirAll(stateDir.String(), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode detection record: %w", err)
	}

	tmp, err := os.CreateTemp(stateDir.String(), RecordFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp record file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write detection record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp record file: %w", err)
	}

	if err := os.Rename(tmpName, recordPath(dir).String()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace detection record: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and for callers that want
// detection without touching the tree (e.g. read-only checkouts).
type MemoryStore struct {
	mu      sync.RWMutex
	records map[types.FilesystemPath]Record
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[types.FilesystemPath]Record{}}
}

// Get returns the stored record for dir, if any.
func (s *MemoryStore) Get(dir types.FilesystemPath) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[fspath.Clean(dir)]
	return rec, ok
}

// Put stores the record for dir, replacing any previous one.
func (s *MemoryStore) Put(dir types.FilesystemPath, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[fspath.Clean(dir)] = rec
	return nil
}
