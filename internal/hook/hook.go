// SPDX-License-Identifier: MPL-2.0

// Package hook implements the editor/agent hook bridge: it reads one JSON
// event from stdin, resolves workspace context and effective settings for
// the touched file, and passes the input through to stdout byte-identically.
//
// The passthrough contract is strict: downstream consumers chain hooks by
// piping, so the bridge must never reshape, reformat, or truncate the
// event, and must never fail the hosting tool. All detection output is
// advisory and goes to stderr.
package hook

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"workscope-cli/internal/detect"
	"workscope-cli/internal/resolve"
	"workscope-cli/pkg/fspath"
	"workscope-cli/pkg/types"
)

type (
	// Event is the hook payload shape shared by supported editors and
	// agents. Unknown fields are ignored; the raw bytes are what gets
	// passed through.
	Event struct {
		// ToolName names the tool invocation that triggered the hook.
		ToolName string `json:"tool_name"`
		// ToolInput carries the tool's arguments.
		ToolInput ToolInput `json:"tool_input"`
		// Cwd is the working directory of the hook invocation.
		Cwd string `json:"cwd"`
	}

	// ToolInput is the subset of tool arguments the bridge inspects.
	ToolInput struct {
		// FilePath is the file the tool is operating on.
		FilePath string `json:"file_path"`
	}

	// Bridge wires the passthrough loop to a detector and settings
	// resolver.
	Bridge struct {
		// Detector resolves workspace context for event paths.
		Detector *detect.Detector
		// Resolver resolves effective settings for the touched package.
		// Nil disables the settings advisory.
		Resolver *resolve.Resolver
		// Logger receives advisory output (stderr in production).
		Logger *log.Logger
	}
)

// Run reads the full event from in, writes it to out unmodified, and logs
// advisory workspace context to the bridge logger. Run returns an error
// only when the passthrough itself fails; detection trouble is logged and
// swallowed.
func (b *Bridge) Run(in io.Reader, out io.Writer) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	if _, err := out.Write(raw); err != nil {
		return err
	}

	b.advise(raw)
	return nil
}

// advise parses the event and logs what workscope knows about the touched
// path. Every failure mode here is silent or logged at debug level; the
// hosting tool must never notice.
func (b *Bridge) advise(raw []byte) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		b.Logger.Debug("hook event is not valid JSON, passing through", "err", err)
		return
	}

	dir := b.eventDir(ev)
	if dir == "" {
		return
	}

	ctx, err := b.Detector.Detect(dir)
	if err != nil {
		b.Logger.Debug("detection failed for hook event", "dir", dir, "err", err)
		return
	}

	pkgDir := dir
	if ev.ToolInput.FilePath != "" {
		if pkg, ok := ctx.PackageFor(types.FilesystemPath(ev.ToolInput.FilePath)); ok {
			pkgDir = pkg.Path
			b.Logger.Info("resolved package for event",
				"tool", ev.ToolName,
				"package", pkg.Name,
				"tags", tagList(pkg.Tags),
				"packageManager", pkg.PackageManager)
		}
	}
	if ctx.IsWorkspace() {
		b.Logger.Info("workspace context",
			"kind", ctx.Kind,
			"root", ctx.Root,
			"members", len(ctx.Packages),
			"package", pkgDir)
	}

	if b.Resolver != nil {
		res := b.Resolver.Resolve(ctx.Root, pkgDir)
		b.Logger.Info("resolved settings for event",
			"package", pkgDir,
			"layers", len(res.Layers),
			"keys", len(res.Values))
		for _, warning := range res.Warnings {
			b.Logger.Warn("settings layer skipped", "warning", warning)
		}
	}
}

// eventDir picks the directory detection should start from: the touched
// file's directory when present, else the event cwd.
func (b *Bridge) eventDir(ev Event) types.FilesystemPath {
	if ev.ToolInput.FilePath != "" {
		return fspath.Dir(types.FilesystemPath(ev.ToolInput.FilePath))
	}
	if ev.Cwd != "" {
		return types.FilesystemPath(ev.Cwd)
	}
	return ""
}

func tagList[T ~string](tags []T) string {
	strs := make([]string, len(tags))
	for i, tag := range tags {
		strs[i] = string(tag)
	}
	return strings.Join(strs, ",")
}
