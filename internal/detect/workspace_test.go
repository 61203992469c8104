// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"path/filepath"
	"reflect"
	"testing"

	"workscope-cli/internal/cache"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/testutil"
	"workscope-cli/pkg/types"
)

// writeTree writes a set of relative-path → content files under root,
// creating intermediate directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		testutil.MustMkdirAll(t, filepath.Dir(path), 0o755)
		testutil.MustWriteFile(t, path, []byte(content), 0o644)
	}
}

func TestDetectPnpmMonorepo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pnpm-workspace.yaml":         "packages:\n  - \"backend\"\n  - \"frontend\"\n",
		"package.json":                `{"name":"monorepo-root"}`,
		"backend/pom.xml":             "<project><artifactId>backend</artifactId></project>",
		"frontend/package.json":       `{"name":"frontend"}`,
		"frontend/pnpm-lock.yaml":     "lockfileVersion: '9.0'\n",
		"frontend/src/app.ts":         "export {}\n",
		"backend/src/main/Main.java":  "class Main {}\n",
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(filepath.Join(root, "frontend")))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if ctx.Kind != ecosystem.KindPnpm {
		t.Errorf("Kind = %v, want %v", ctx.Kind, ecosystem.KindPnpm)
	}
	if ctx.Root.String() != root {
		t.Errorf("Root = %q, want %q", ctx.Root, root)
	}
	if len(ctx.Packages) != 2 {
		t.Fatalf("got %d packages, want 2: %+v", len(ctx.Packages), ctx.Packages)
	}

	// Members come back sorted by path: backend first.
	backend, frontend := ctx.Packages[0], ctx.Packages[1]
	if !reflect.DeepEqual(backend.Tags, []ecosystem.Tag{ecosystem.TagMaven}) {
		t.Errorf("backend tags = %v, want [maven]", backend.Tags)
	}
	if !reflect.DeepEqual(frontend.Tags, []ecosystem.Tag{ecosystem.TagNodeJS}) {
		t.Errorf("frontend tags = %v, want [nodejs]", frontend.Tags)
	}
	if frontend.PackageManager != "pnpm" {
		t.Errorf("frontend PackageManager = %q, want %q", frontend.PackageManager, "pnpm")
	}
	if frontend.Name != "frontend" {
		t.Errorf("frontend Name = %q, want %q", frontend.Name, "frontend")
	}
}

func TestDetectYarnWorkspacesField(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":              `{"name":"root","workspaces":["packages/*"]}`,
		"yarn.lock":                 "",
		"packages/ui/package.json":  `{"name":"@acme/ui"}`,
		"packages/api/package.json": `{"name":"@acme/api"}`,
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(filepath.Join(root, "packages", "ui")))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if ctx.Kind != ecosystem.KindYarn {
		t.Errorf("Kind = %v, want %v", ctx.Kind, ecosystem.KindYarn)
	}
	names := make([]string, len(ctx.Packages))
	for i, pkg := range ctx.Packages {
		names[i] = pkg.Name
	}
	want := []string{"@acme/api", "@acme/ui"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("package names = %v, want %v", names, want)
	}
}

func TestDetectYarnWorkspacesObjectForm(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":             `{"name":"root","workspaces":{"packages":["libs/*"]}}`,
		"libs/core/package.json":   `{"name":"core"}`,
		"libs/extras/package.json": `{"name":"extras"}`,
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(root))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	if len(ctx.Packages) != 2 {
		t.Errorf("got %d packages, want 2", len(ctx.Packages))
	}
}

func TestDetectLernaDefaultPackages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"lerna.json":               `{"version":"1.0.0"}`,
		"packages/a/package.json":  `{"name":"a"}`,
		"packages/b/package.json":  `{"name":"b"}`,
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(root))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if ctx.Kind != ecosystem.KindLerna {
		t.Errorf("Kind = %v, want %v", ctx.Kind, ecosystem.KindLerna)
	}
	if len(ctx.Packages) != 2 {
		t.Errorf("got %d packages, want 2", len(ctx.Packages))
	}
}

func TestWorkspaceIndicatorPrecedence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pnpm-workspace.yaml":   "packages:\n  - \"apps/*\"\n",
		"turbo.json":            `{"tasks":{}}`,
		"package.json":          `{"name":"root"}`,
		"apps/web/package.json": `{"name":"web"}`,
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(root))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	if ctx.Kind != ecosystem.KindPnpm {
		t.Errorf("Kind = %v, want %v (pnpm outranks turborepo)", ctx.Kind, ecosystem.KindPnpm)
	}
}

func TestDetectCorruptWorkspaceManifestDegrades(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	start := filepath.Join(root, "app")
	writeTree(t, root, map[string]string{
		"pnpm-workspace.yaml": "packages: [unclosed\n  - broken",
		"app/package.json":    `{"name":"app"}`,
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(start))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	// The root is still recognized; the unreadable member list degrades
	// to the starting directory as sole package.
	if ctx.Kind != ecosystem.KindPnpm {
		t.Errorf("Kind = %v, want %v", ctx.Kind, ecosystem.KindPnpm)
	}
	if len(ctx.Packages) != 1 || ctx.Packages[0].Path.String() != start {
		t.Errorf("Packages = %+v, want single package at %q", ctx.Packages, start)
	}
}

func TestDetectCachesStartDirectoryRecord(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pnpm-workspace.yaml":   "packages:\n  - \"apps/*\"\n",
		"package.json":          `{"name":"root"}`,
		"apps/web/package.json": `{"name":"web"}`,
	})

	store := cache.NewMemoryStore()
	d := newTestDetector(store)
	if _, err := d.Detect(types.FilesystemPath(root)); err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	// The starting directory is detected and recorded before the member
	// walk, even when it is the workspace root rather than a member.
	rec, ok := store.Get(types.FilesystemPath(root))
	if !ok {
		t.Fatal("no record stored for the starting directory")
	}
	if !reflect.DeepEqual(rec.Tags, []ecosystem.Tag{ecosystem.TagNodeJS}) {
		t.Errorf("root record tags = %v, want [nodejs]", rec.Tags)
	}
}

func TestEnumerateSkipsNodeModulesAndHiddenDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":                       `{"workspaces":["*"]}`,
		"web/package.json":                   `{"name":"web"}`,
		"node_modules/react/package.json":    `{"name":"react"}`,
		".cache/stale/package.json":          `{"name":"stale"}`,
	})

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(root))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	for _, pkg := range ctx.Packages {
		base := filepath.Base(pkg.Path.String())
		if base == "node_modules" || base == ".cache" {
			t.Errorf("member enumeration leaked %q", pkg.Path)
		}
	}
}

func TestPackageForResolvesClosestEnclosing(t *testing.T) {
	t.Parallel()

	ctx := WorkspaceContext{
		Kind: ecosystem.KindPnpm,
		Root: "/repo",
		Packages: []Package{
			{Name: "root", Path: "/repo"},
			{Name: "frontend", Path: "/repo/frontend"},
			{Name: "frontend-e2e", Path: "/repo/frontend/e2e"},
		},
	}

	tests := []struct {
		path     string
		wantName string
		wantOK   bool
	}{
		{"/repo/frontend/src/app.ts", "frontend", true},
		{"/repo/frontend/e2e/smoke.test.ts", "frontend-e2e", true},
		{"/repo/frontend", "frontend", true},
		{"/repo/README.md", "root", true},
		{"/elsewhere/file.go", "", false},
		// Sibling with a shared name prefix must not match.
		{"/repo/frontend-legacy/app.ts", "root", true},
	}

	for _, tt := range tests {
		pkg, ok := ctx.PackageFor(types.FilesystemPath(filepath.FromSlash(tt.path)))
		if ok != tt.wantOK {
			t.Errorf("PackageFor(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			continue
		}
		if ok && pkg.Name != tt.wantName {
			t.Errorf("PackageFor(%q) = %q, want %q", tt.path, pkg.Name, tt.wantName)
		}
	}
}
