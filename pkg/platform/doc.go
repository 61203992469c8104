// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package contains utilities for handling platform-specific concerns,
// such as build-tool wrapper script naming (./gradlew vs gradlew.bat) and
// the OS identifiers the engine reports to callers.
package platform
