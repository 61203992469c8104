// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"workscope-cli/internal/cache"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/testutil"
	"workscope-cli/pkg/types"
)

func newTestDetector(store cache.Store) *Detector {
	d := New(store)
	d.Now = testutil.NewFakeClock(time.Time{}).Now
	return d
}

func TestTagsForDetectsAndCaches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "package.json"), []byte(`{"name":"web"}`), 0o644)
	testutil.MustWriteFile(t, filepath.Join(dir, "pyproject.toml"), []byte("[project]\nname = \"web-tools\"\n"), 0o644)

	store := cache.NewMemoryStore()
	d := newTestDetector(store)

	tags := d.TagsFor(types.FilesystemPath(dir))
	want := []ecosystem.Tag{ecosystem.TagNodeJS, ecosystem.TagPython}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("TagsFor() = %v, want %v", tags, want)
	}

	rec, ok := store.Get(types.FilesystemPath(dir))
	if !ok {
		t.Fatal("expected a record to be stored after detection")
	}
	if !reflect.DeepEqual(rec.Tags, want) {
		t.Errorf("stored tags = %v, want %v", rec.Tags, want)
	}
	if rec.Hash == "" {
		t.Error("stored record has empty hash")
	}
}

func TestTagsForReusesFreshRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"svc\"\n"), 0o644)

	store := cache.NewMemoryStore()
	d := newTestDetector(store)

	first := d.TagsFor(types.FilesystemPath(dir))

	// Poison the stored tags but keep the hash: a matching hash must
	// short-circuit to the stored record without re-deriving.
	rec, _ := store.Get(types.FilesystemPath(dir))
	rec.Tags = []ecosystem.Tag{ecosystem.TagGo}
	if err := store.Put(types.FilesystemPath(dir), rec); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	second := d.TagsFor(types.FilesystemPath(dir))
	if !reflect.DeepEqual(second, []ecosystem.Tag{ecosystem.TagGo}) {
		t.Errorf("TagsFor() with fresh record = %v, want stored %v", second, []ecosystem.Tag{ecosystem.TagGo})
	}
	if reflect.DeepEqual(first, second) {
		t.Error("expected poisoned record to be returned verbatim, got a re-derivation")
	}
}

func TestTagsForInvalidatesOnManifestEdit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	testutil.MustWriteFile(t, manifest, []byte(`{"name":"a"}`), 0o644)

	store := cache.NewMemoryStore()
	d := newTestDetector(store)

	d.TagsFor(types.FilesystemPath(dir))
	before, _ := store.Get(types.FilesystemPath(dir))

	testutil.MustWriteFile(t, manifest, []byte(`{"name":"b","dependencies":{"react":"^19"}}`), 0o644)
	d.TagsFor(types.FilesystemPath(dir))
	after, _ := store.Get(types.FilesystemPath(dir))

	if before.Hash == after.Hash {
		t.Error("expected manifest edit to change the stored hash")
	}
}

func TestTagsForIsDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "package.json"), []byte(`{}`), 0o644)
	testutil.MustWriteFile(t, filepath.Join(dir, "pom.xml"), []byte("<project></project>"), 0o644)
	testutil.MustWriteFile(t, filepath.Join(dir, "go.mod"), []byte("module example\n"), 0o644)

	d := newTestDetector(cache.NewMemoryStore())

	first := d.TagsFor(types.FilesystemPath(dir))
	for i := 0; i < 5; i++ {
		got := d.TagsFor(types.FilesystemPath(dir))
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: TagsFor() = %v, want %v", i, got, first)
		}
	}
}

func TestTagsForEnrichesPyprojectFacets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pyproject string
		want      []ecosystem.Tag
	}{
		{
			name:      "poetry tool table",
			pyproject: "[tool.poetry]\nname = \"api\"\nversion = \"1.0.0\"\n",
			want:      []ecosystem.Tag{ecosystem.TagPython, ecosystem.TagPoetry},
		},
		{
			name:      "uv tool table",
			pyproject: "[project]\nname = \"api\"\n\n[tool.uv]\ndev-dependencies = []\n",
			want:      []ecosystem.Tag{ecosystem.TagPython, ecosystem.TagUV},
		},
		{
			name:      "plain pep 621",
			pyproject: "[project]\nname = \"api\"\n",
			want:      []ecosystem.Tag{ecosystem.TagPython},
		},
		{
			name:      "malformed toml degrades to presence tags",
			pyproject: "[tool.poetry\nname =",
			want:      []ecosystem.Tag{ecosystem.TagPython},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(dir, "pyproject.toml"), []byte(tt.pyproject), 0o644)

			d := newTestDetector(cache.NewMemoryStore())
			got := d.TagsFor(types.FilesystemPath(dir))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TagsFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagsForDetectsMavenMultiModule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pom := `<project>
  <modules>
    <module>core</module>
    <module>cli</module>
  </modules>
</project>`
	testutil.MustWriteFile(t, filepath.Join(dir, "pom.xml"), []byte(pom), 0o644)
	testutil.MustWriteFile(t, filepath.Join(dir, "mvnw"), []byte("#!/bin/sh\n"), 0o755)

	d := newTestDetector(cache.NewMemoryStore())
	got := d.TagsFor(types.FilesystemPath(dir))
	want := []ecosystem.Tag{ecosystem.TagMaven, ecosystem.TagMavenWrapper, ecosystem.TagMavenMultiModule}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagsFor() = %v, want %v", got, want)
	}
}

func TestTagsForEmptyDirectory(t *testing.T) {
	t.Parallel()

	d := newTestDetector(cache.NewMemoryStore())
	got := d.TagsFor(types.FilesystemPath(t.TempDir()))
	if len(got) != 0 {
		t.Errorf("TagsFor(empty dir) = %v, want no tags", got)
	}
}

func TestDetectSinglePackage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"ripper\"\n"), 0o644)

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if ctx.IsWorkspace() {
		t.Errorf("Kind = %v, want %v", ctx.Kind, ecosystem.KindNone)
	}
	if ctx.Root.String() != dir {
		t.Errorf("Root = %q, want %q", ctx.Root, dir)
	}
	if len(ctx.Packages) != 1 {
		t.Fatalf("got %d packages, want 1", len(ctx.Packages))
	}
	pkg := ctx.Packages[0]
	if pkg.Name != "ripper" {
		t.Errorf("Name = %q, want %q", pkg.Name, "ripper")
	}
	if pkg.PackageManager != "cargo" {
		t.Errorf("PackageManager = %q, want %q", pkg.PackageManager, "cargo")
	}
}

func TestDetectWalksUpToProjectRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, "go.mod"), []byte("module svc\n"), 0o644)
	nested := filepath.Join(root, "internal", "api")
	testutil.MustMkdirAll(t, nested, 0o755)

	d := newTestDetector(cache.NewMemoryStore())
	ctx, err := d.Detect(types.FilesystemPath(nested))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if ctx.Root.String() != root {
		t.Errorf("Root = %q, want manifest-bearing ancestor %q", ctx.Root, root)
	}
	if len(ctx.Packages) != 1 || !reflect.DeepEqual(ctx.Packages[0].Tags, []ecosystem.Tag{ecosystem.TagGo}) {
		t.Errorf("Packages = %+v, want single golang package", ctx.Packages)
	}
}

func TestPackageManagerInference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "corepack declaration wins over lockfile",
			files: map[string]string{"package.json": `{"packageManager":"yarn@4.1.0"}`, "pnpm-lock.yaml": ""},
			want:  "yarn",
		},
		{
			name:  "pnpm lockfile",
			files: map[string]string{"package.json": `{}`, "pnpm-lock.yaml": ""},
			want:  "pnpm",
		},
		{
			name:  "bun lockfile",
			files: map[string]string{"package.json": `{}`, "bun.lockb": ""},
			want:  "bun",
		},
		{
			name:  "node default is npm",
			files: map[string]string{"package.json": `{}`},
			want:  "npm",
		},
		{
			name:  "uv lockfile",
			files: map[string]string{"pyproject.toml": "[project]\nname = \"x\"\n", "uv.lock": ""},
			want:  "uv",
		},
		{
			name:  "pipenv from Pipfile",
			files: map[string]string{"requirements.txt": "", "Pipfile": ""},
			want:  "pipenv",
		},
		{
			name:  "python default is pip",
			files: map[string]string{"setup.py": ""},
			want:  "pip",
		},
		{
			name:  "gradle",
			files: map[string]string{"build.gradle.kts": ""},
			want:  "gradle",
		},
		{
			name:  "dotnet by project suffix",
			files: map[string]string{"App.csproj": "<Project/>"},
			want:  "dotnet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, content := range tt.files {
				testutil.MustWriteFile(t, filepath.Join(dir, name), []byte(content), 0o644)
			}

			d := newTestDetector(cache.NewMemoryStore())
			pkg := d.packageAt(types.FilesystemPath(dir))
			if pkg.PackageManager != tt.want {
				t.Errorf("PackageManager = %q, want %q", pkg.PackageManager, tt.want)
			}
		})
	}
}
