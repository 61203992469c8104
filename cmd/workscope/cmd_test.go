// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"workscope-cli/internal/config"
	"workscope-cli/internal/detect"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/issue"
	"workscope-cli/pkg/types"
)

func TestHasWrapperTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tags []ecosystem.Tag
		want bool
	}{
		{"maven wrapper", []ecosystem.Tag{ecosystem.TagMaven, ecosystem.TagMavenWrapper}, true},
		{"gradle wrapper", []ecosystem.Tag{ecosystem.TagGradle, ecosystem.TagGradleWrapper}, true},
		{"plain maven", []ecosystem.Tag{ecosystem.TagMaven}, false},
		{"no tags", nil, false},
		{"non-jvm", []ecosystem.Tag{ecosystem.TagNodeJS, ecosystem.TagRust}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasWrapperTag(tt.tags); got != tt.want {
				t.Errorf("hasWrapperTag(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestToolsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pkg  detect.Package
		pm   string
		want []types.ToolName
	}{
		{
			name: "node package probes manager then runtime",
			pkg:  detect.Package{Tags: []ecosystem.Tag{ecosystem.TagNodeJS}},
			pm:   "pnpm",
			want: []types.ToolName{"pnpm", "node"},
		},
		{
			name: "python with uv",
			pkg:  detect.Package{Tags: []ecosystem.Tag{ecosystem.TagPython, ecosystem.TagUV}},
			pm:   "uv",
			want: []types.ToolName{"uv", "python3"},
		},
		{
			name: "maven multi-module dedupes across tags",
			pkg: detect.Package{Tags: []ecosystem.Tag{
				ecosystem.TagMaven, ecosystem.TagMavenWrapper, ecosystem.TagMavenMultiModule,
			}},
			pm:   "maven",
			want: []types.ToolName{"mvn", "java"},
		},
		{
			name: "gradle kotlin dsl",
			pkg:  detect.Package{Tags: []ecosystem.Tag{ecosystem.TagGradle, ecosystem.TagGradleKotlinDSL}},
			pm:   "gradle",
			want: []types.ToolName{"gradle", "java"},
		},
		{
			name: "rust",
			pkg:  detect.Package{Tags: []ecosystem.Tag{ecosystem.TagRust}},
			pm:   "cargo",
			want: []types.ToolName{"cargo"},
		},
		{
			name: "no tags probes nothing",
			pkg:  detect.Package{},
			pm:   "npm",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := toolsFor(tt.pkg, tt.pm)
			if len(got) != len(tt.want) {
				t.Fatalf("toolsFor() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("toolsFor()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPackageManagerForFallsBackToConfiguredDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Defaults.NodePackageManager = "pnpm"
	cfg.Defaults.PythonPackageManager = "uv"
	app := &App{Config: cfg}

	tests := []struct {
		name string
		pkg  detect.Package
		want string
	}{
		{"detected manager wins", detect.Package{Tags: []ecosystem.Tag{ecosystem.TagNodeJS}, PackageManager: "yarn"}, "yarn"},
		{"node falls back to config", detect.Package{Tags: []ecosystem.Tag{ecosystem.TagNodeJS}}, "pnpm"},
		{"python falls back to config", detect.Package{Tags: []ecosystem.Tag{ecosystem.TagPython}}, "uv"},
		{"other families have no default", detect.Package{Tags: []ecosystem.Tag{ecosystem.TagGo}}, ""},
		{"no tags", detect.Package{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := app.packageManagerFor(tt.pkg); got != tt.want {
				t.Errorf("packageManagerFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		t.Parallel()
		err := issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Run 'workscope config init'").
			Wrap(errors.New("no such file")).
			BuildError()

		got := formatErrorForDisplay(err, false)
		if !strings.Contains(got, "load configuration") {
			t.Errorf("formatErrorForDisplay() = %q, want operation mentioned", got)
		}
		if !strings.Contains(got, "workscope config init") {
			t.Errorf("formatErrorForDisplay() = %q, want suggestion mentioned", got)
		}
	})
}

func TestRenderIssueWritesCatalogEntry(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	renderIssue(&buf, issue.NoEcosystemDetectedId)

	if !strings.Contains(buf.String(), "No ecosystem detected") {
		t.Errorf("renderIssue() output %q, want the catalog entry title", buf.String())
	}
}

func TestRenderIssueUnknownIdWritesNothing(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	renderIssue(&buf, issue.Id(9999))

	if buf.Len() != 0 {
		t.Errorf("renderIssue() wrote %q for an unknown id, want nothing", buf.String())
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad intent")
	err := &ExitError{Code: types.ExitCode(2), Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is(err, inner) = false, want true")
	}
	if !strings.Contains(err.Error(), "bad intent") {
		t.Errorf("Error() = %q, want inner message included", err.Error())
	}
}
