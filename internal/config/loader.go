// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// Source selects where engine configuration is read from. The zero value
// means the platform config directory.
type Source struct {
	// File forces loading from one specific config file; it wins over Dir
	// and a missing file is then an error rather than a defaults fallback.
	File string
	// Dir overrides the config directory lookup. Used by tests to point
	// loading at a temp directory.
	Dir string
}

// Loader resolves engine configuration from a Source.
type Loader interface {
	// Load returns the effective configuration plus the path it was read
	// from. The path is empty when built-in defaults were used.
	Load(ctx context.Context, src Source) (*Config, string, error)
}

// cueLoader reads CUE config files, validating them against the embedded
// schema before merging over the defaults.
type cueLoader struct{}

// NewLoader returns the file-backed Loader the CLI uses.
func NewLoader() Loader {
	return cueLoader{}
}

func (cueLoader) Load(ctx context.Context, src Source) (*Config, string, error) {
	return loadFromSource(ctx, src)
}
