// SPDX-License-Identifier: MPL-2.0

package config

import "context"

var (
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride forces loading from a specific file, set by
	// the CLI's --config flag.
	configFilePathOverride string
)

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride forces subsequent Load calls to read the
// given config file exclusively.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Load reads configuration using the package-level overrides. CLI entry
// points use this; code under test should prefer an explicit Loader.
func Load() (*Config, error) {
	cfg, _, err := NewLoader().Load(context.Background(), Source{File: configFilePathOverride})
	return cfg, err
}

// LoadWithOrigin is Load plus the path the configuration was read from;
// the path is empty when built-in defaults were used.
func LoadWithOrigin() (*Config, string, error) {
	return NewLoader().Load(context.Background(), Source{File: configFilePathOverride})
}
