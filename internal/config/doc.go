// SPDX-License-Identifier: MPL-2.0

// Package config handles the engine's own configuration using Viper with
// CUE as the file format.
//
// Configuration is loaded from ~/.config/workscope/config.cue (or XDG
// equivalent on Linux, ~/Library/Application Support/workscope/config.cue
// on macOS, %APPDATA%\workscope\config.cue on Windows). The package covers
// cache behavior, wrapper preference, fallback package managers, UI
// settings, and the workspace walk bound.
//
// This is distinct from the layered project settings the resolver merges:
// config.cue configures the engine itself, while settings.json files
// configure how the engine treats a given project tree.
//
// Configuration validation is performed against a CUE schema
// (config_schema.cue) to ensure type safety and provide clear error
// messages for invalid configurations.
package config
