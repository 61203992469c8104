// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"path/filepath"
	"reflect"
	"testing"

	"workscope-cli/internal/cache"
	"workscope-cli/internal/testutil"
	"workscope-cli/pkg/types"
)

// writeSettings writes a settings.json under dir's state directory.
func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	stateDir := filepath.Join(dir, cache.StateDirName)
	testutil.MustMkdirAll(t, stateDir, 0o755)
	testutil.MustWriteFile(t, filepath.Join(stateDir, SettingsFileName), []byte(content), 0o644)
}

func TestMergeLayersPrecedence(t *testing.T) {
	t.Parallel()

	global := map[string]any{"a": float64(1), "b": float64(1)}
	workspace := map[string]any{"b": float64(2), "c": float64(2)}
	pkg := map[string]any{"c": float64(3)}

	got := MergeLayers(global, workspace, pkg)

	want := map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeLayers() = %v, want %v", got, want)
	}
}

func TestMergeLayersKeepsKeysAbsentFromHigherLayers(t *testing.T) {
	t.Parallel()

	lower := map[string]any{
		"keep":   true,
		"nested": map[string]any{"keep": true, "swap": "old"},
	}
	higher := map[string]any{
		"nested": map[string]any{"swap": "new"},
	}

	got := MergeLayers(lower, higher)

	want := map[string]any{
		"keep":   true,
		"nested": map[string]any{"keep": true, "swap": "new"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeLayers() = %v, want %v", got, want)
	}
}

func TestMergeLayersZeroValueOverrides(t *testing.T) {
	t.Parallel()

	lower := map[string]any{"wrapperPrefer": true, "depth": float64(8), "scheme": "dark"}
	higher := map[string]any{"wrapperPrefer": false, "depth": float64(0), "scheme": ""}

	got := MergeLayers(lower, higher)

	// A key spelled out in the higher layer wins even with a zero value.
	want := map[string]any{"wrapperPrefer": false, "depth": float64(0), "scheme": ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeLayers() = %v, want %v", got, want)
	}
}

func TestMergeLayersReplacesArrays(t *testing.T) {
	t.Parallel()

	lower := map[string]any{"x": []any{float64(1), float64(2)}}
	higher := map[string]any{"x": []any{float64(3)}}

	got := MergeLayers(lower, higher)

	want := map[string]any{"x": []any{float64(3)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeLayers() = %v, want %v (arrays replace, never concatenate)", got, want)
	}
}

func TestMergeLayersMergesNestedMaps(t *testing.T) {
	t.Parallel()

	lower := map[string]any{"ui": map[string]any{"color": "dark", "verbose": false}}
	higher := map[string]any{"ui": map[string]any{"verbose": true}}

	got := MergeLayers(lower, higher)

	want := map[string]any{"ui": map[string]any{"color": "dark", "verbose": true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeLayers() = %v, want %v", got, want)
	}
}

func TestMergeLayersDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	lower := map[string]any{"ui": map[string]any{"color": "dark"}}
	higher := map[string]any{"ui": map[string]any{"color": "light"}}

	merged := MergeLayers(lower, higher)

	if lower["ui"].(map[string]any)["color"] != "dark" {
		t.Error("lower layer was mutated by the merge")
	}

	merged["ui"].(map[string]any)["color"] = "changed"
	if higher["ui"].(map[string]any)["color"] != "light" {
		t.Error("merged result shares map storage with an input layer")
	}
}

func TestResolveThreeScopes(t *testing.T) {
	t.Parallel()

	globalDir := t.TempDir()
	root := t.TempDir()
	pkg := filepath.Join(root, "frontend")
	testutil.MustMkdirAll(t, pkg, 0o755)

	globalPath := filepath.Join(globalDir, SettingsFileName)
	testutil.MustWriteFile(t, globalPath, []byte(`{"hashStrategy":"content","defaults":{"nodePackageManager":"npm"}}`), 0o644)
	writeSettings(t, root, `{"defaults":{"nodePackageManager":"pnpm"},"wrapperPrefer":true}`)
	writeSettings(t, pkg, `{"wrapperPrefer":false}`)

	r := &Resolver{GlobalSettingsPath: types.FilesystemPath(globalPath)}
	res := r.Resolve(types.FilesystemPath(root), types.FilesystemPath(pkg))

	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	want := map[string]any{
		"hashStrategy":  "content",
		"defaults":      map[string]any{"nodePackageManager": "pnpm"},
		"wrapperPrefer": false,
	}
	if !reflect.DeepEqual(res.Values, want) {
		t.Errorf("Resolve() = %v, want %v", res.Values, want)
	}
	if len(res.Layers) != 3 {
		t.Errorf("got %d layers, want 3", len(res.Layers))
	}
}

func TestResolveMalformedLayerSkippedWithWarning(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	pkg := filepath.Join(root, "app")
	testutil.MustMkdirAll(t, pkg, 0o755)

	writeSettings(t, root, `{"defaults":{"pythonPackageManager":"uv"}}`)
	writeSettings(t, pkg, `{not json`)

	r := &Resolver{}
	res := r.Resolve(types.FilesystemPath(root), types.FilesystemPath(pkg))

	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(res.Warnings), res.Warnings)
	}
	want := map[string]any{"defaults": map[string]any{"pythonPackageManager": "uv"}}
	if !reflect.DeepEqual(res.Values, want) {
		t.Errorf("Resolve() = %v, want workspace layer to survive the broken package layer", res.Values)
	}
}

func TestResolveAllLayersAbsent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := &Resolver{}
	res := r.Resolve(types.FilesystemPath(dir), types.FilesystemPath(dir))

	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings for absent layers: %v", res.Warnings)
	}
	if len(res.Values) != 0 {
		t.Errorf("Resolve() = %v, want empty settings", res.Values)
	}
	// Root and package collapse into one consulted layer.
	if len(res.Layers) != 1 {
		t.Errorf("got %d layers, want 1", len(res.Layers))
	}
}
