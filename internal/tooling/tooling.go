// SPDX-License-Identifier: MPL-2.0

// Package tooling probes the host for the command-line tools the detected
// ecosystems rely on (package managers, build tools, runtimes).
package tooling

import (
	"context"
	"os/exec"
	"strings"

	"workscope-cli/pkg/types"
)

// Status is the probe result for one tool. A missing tool is an ordinary
// outcome, not an error: callers degrade (skip the tool, suggest an
// install) rather than abort.
type Status struct {
	// Name is the probed tool.
	Name types.ToolName
	// Installed reports whether the tool resolved on PATH.
	Installed bool
	// Path is the resolved binary location, empty when not installed.
	Path types.FilesystemPath
	// Version is the first line of the tool's --version output, empty
	// when unavailable.
	Version string
}

// Probe checks one tool's availability on PATH and best-effort reads its
// version. Probe never fails: an invalid name, a missing binary, or a
// tool that cannot report a version all come back as a Status.
func Probe(ctx context.Context, name types.ToolName) Status {
	status := Status{Name: name}

	if ok, _ := name.IsValid(); !ok {
		return status
	}

	path, err := exec.LookPath(name.String())
	if err != nil {
		return status
	}
	status.Installed = true
	status.Path = types.FilesystemPath(path)
	status.Version = probeVersion(ctx, path)
	return status
}

// ProbeAll probes a list of tools, preserving input order.
func ProbeAll(ctx context.Context, names []types.ToolName) []Status {
	statuses := make([]Status, len(names))
	for i, name := range names {
		statuses[i] = Probe(ctx, name)
	}
	return statuses
}

// probeVersion runs `tool --version` and returns the first output line.
// Tools that reject the flag or hang past the context deadline report an
// empty version.
func probeVersion(ctx context.Context, path string) string {
	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}
