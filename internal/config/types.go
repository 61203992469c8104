// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"workscope-cli/internal/cache"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// minWalkDepth and maxWalkDepth bound the configurable upward walk.
	minWalkDepth = 1
	maxWalkDepth = 256
)

// Node package managers accepted by defaults.node_package_manager.
var nodePackageManagers = map[string]bool{
	"npm": true, "pnpm": true, "yarn": true, "bun": true,
}

// Python package managers accepted by defaults.python_package_manager.
var pythonPackageManagers = map[string]bool{
	"pip": true, "uv": true, "poetry": true, "pipenv": true,
}

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPackageManager is the sentinel error wrapped by InvalidPackageManagerError.
	ErrInvalidPackageManager = errors.New("invalid package manager")
	// ErrInvalidWalkDepth is the sentinel error wrapped by InvalidWalkDepthError.
	ErrInvalidWalkDepth = errors.New("invalid walk depth")
	// ErrInvalidCacheConfig is the sentinel error wrapped by InvalidCacheConfigError.
	ErrInvalidCacheConfig = errors.New("invalid cache config")
	// ErrInvalidDefaultsConfig is the sentinel error wrapped by InvalidDefaultsConfigError.
	ErrInvalidDefaultsConfig = errors.New("invalid defaults config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidPackageManagerError is returned when a defaults entry names a
	// package manager outside the supported set. It wraps
	// ErrInvalidPackageManager for errors.Is() compatibility.
	InvalidPackageManagerError struct {
		Field string
		Value string
	}

	// InvalidWalkDepthError is returned when max_walk_depth is outside
	// [1, 256]. It wraps ErrInvalidWalkDepth for errors.Is() compatibility.
	InvalidWalkDepthError struct {
		Value int
	}

	// CacheConfig controls the detection cache.
	CacheConfig struct {
		// Enabled toggles record persistence. Detection itself always
		// runs; disabling only skips reads/writes of .workscope records.
		Enabled bool `mapstructure:"enabled"`
		// HashStrategy selects content or mtime hashing of manifests.
		HashStrategy cache.HashStrategy `mapstructure:"hash_strategy"`
	}

	// InvalidCacheConfigError aggregates CacheConfig validation failures.
	// It wraps ErrInvalidCacheConfig for errors.Is() compatibility.
	InvalidCacheConfigError struct {
		Errors []error
	}

	// WrapperConfig controls build-tool wrapper preference.
	WrapperConfig struct {
		// Prefer selects the project-local wrapper (mvnw, gradlew) over
		// the system binary whenever the project carries one.
		Prefer bool `mapstructure:"prefer"`
	}

	// DefaultsConfig supplies fallback package managers for ecosystems
	// whose lockfiles do not decide one.
	DefaultsConfig struct {
		// NodePackageManager is used for node packages without a lockfile
		// or packageManager declaration.
		NodePackageManager string `mapstructure:"node_package_manager"`
		// PythonPackageManager is used for python packages without a
		// manager-specific lockfile or tool table.
		PythonPackageManager string `mapstructure:"python_package_manager"`
	}

	// InvalidDefaultsConfigError aggregates DefaultsConfig validation
	// failures. It wraps ErrInvalidDefaultsConfig for errors.Is()
	// compatibility.
	InvalidDefaultsConfigError struct {
		Errors []error
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		// ColorScheme is the terminal color scheme preference.
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		// Verbose enables detailed output.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidUIConfigError aggregates UIConfig validation failures.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility.
	InvalidUIConfigError struct {
		Errors []error
	}

	// Config is the engine's own configuration (distinct from the layered
	// settings the resolver merges for target projects).
	Config struct {
		// Cache controls detection record persistence.
		Cache CacheConfig `mapstructure:"cache"`
		// Wrapper controls wrapper-script preference.
		Wrapper WrapperConfig `mapstructure:"wrapper"`
		// Defaults supplies fallback package managers.
		Defaults DefaultsConfig `mapstructure:"defaults"`
		// UI holds terminal output preferences.
		UI UIConfig `mapstructure:"ui"`
		// MaxWalkDepth bounds the upward workspace-root walk.
		MaxWalkDepth int `mapstructure:"max_walk_depth"`
	}

	// InvalidConfigError aggregates Config validation failures.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Errors []error
	}
)

// DefaultConfig returns the built-in defaults used before any config file
// is consulted.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:      true,
			HashStrategy: cache.StrategyContent,
		},
		Wrapper: WrapperConfig{
			Prefer: true,
		},
		Defaults: DefaultsConfig{
			NodePackageManager:   "npm",
			PythonPackageManager: "pip",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		MaxWalkDepth: 64,
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined values,
// and a list of validation errors if it is not.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// IsValid returns whether the CacheConfig is structurally valid, and a
// list of validation errors if it is not.
func (c CacheConfig) IsValid() (bool, []error) {
	if c.HashStrategy == "" {
		return true, nil
	}
	if ok, errs := c.HashStrategy.IsValid(); !ok {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether the DefaultsConfig is structurally valid, and a
// list of validation errors if it is not.
func (d DefaultsConfig) IsValid() (bool, []error) {
	var errs []error
	if d.NodePackageManager != "" && !nodePackageManagers[d.NodePackageManager] {
		errs = append(errs, &InvalidPackageManagerError{Field: "node_package_manager", Value: d.NodePackageManager})
	}
	if d.PythonPackageManager != "" && !pythonPackageManagers[d.PythonPackageManager] {
		errs = append(errs, &InvalidPackageManagerError{Field: "python_package_manager", Value: d.PythonPackageManager})
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the UIConfig is structurally valid, and a list
// of validation errors if it is not.
func (u UIConfig) IsValid() (bool, []error) {
	if u.ColorScheme == "" {
		return true, nil
	}
	if ok, errs := u.ColorScheme.IsValid(); !ok {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether the whole Config is structurally valid, and a
// list of validation errors if it is not.
func (c *Config) IsValid() (bool, []error) {
	var errs []error

	if ok, cacheErrs := c.Cache.IsValid(); !ok {
		errs = append(errs, &InvalidCacheConfigError{Errors: cacheErrs})
	}
	if ok, defErrs := c.Defaults.IsValid(); !ok {
		errs = append(errs, &InvalidDefaultsConfigError{Errors: defErrs})
	}
	if ok, uiErrs := c.UI.IsValid(); !ok {
		errs = append(errs, &InvalidUIConfigError{Errors: uiErrs})
	}
	if c.MaxWalkDepth != 0 && (c.MaxWalkDepth < minWalkDepth || c.MaxWalkDepth > maxWalkDepth) {
		errs = append(errs, &InvalidWalkDepthError{Value: c.MaxWalkDepth})
	}

	return len(errs) == 0, errs
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface for InvalidPackageManagerError.
func (e *InvalidPackageManagerError) Error() string {
	return fmt.Sprintf("invalid package manager %q for %s", e.Value, e.Field)
}

// Unwrap returns ErrInvalidPackageManager for errors.Is() compatibility.
func (e *InvalidPackageManagerError) Unwrap() error { return ErrInvalidPackageManager }

// Error implements the error interface for InvalidWalkDepthError.
func (e *InvalidWalkDepthError) Error() string {
	return fmt.Sprintf("invalid max_walk_depth %d (must be between %d and %d)", e.Value, minWalkDepth, maxWalkDepth)
}

// Unwrap returns ErrInvalidWalkDepth for errors.Is() compatibility.
func (e *InvalidWalkDepthError) Unwrap() error { return ErrInvalidWalkDepth }

// Error implements the error interface for InvalidCacheConfigError.
func (e *InvalidCacheConfigError) Error() string {
	return fmt.Sprintf("invalid cache config: %s", joinErrors(e.Errors))
}

// Unwrap returns ErrInvalidCacheConfig for errors.Is() compatibility.
func (e *InvalidCacheConfigError) Unwrap() error { return ErrInvalidCacheConfig }

// Error implements the error interface for InvalidDefaultsConfigError.
func (e *InvalidDefaultsConfigError) Error() string {
	return fmt.Sprintf("invalid defaults config: %s", joinErrors(e.Errors))
}

// Unwrap returns ErrInvalidDefaultsConfig for errors.Is() compatibility.
func (e *InvalidDefaultsConfigError) Unwrap() error { return ErrInvalidDefaultsConfig }

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.Errors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.Errors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
