// SPDX-License-Identifier: MPL-2.0

// Package command turns an abstract intent into a concrete shell command
// for a detected ecosystem, package manager, and target platform.
package command

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"workscope-cli/internal/ecosystem"
	"workscope-cli/pkg/platform"
)

// ErrUnsupportedIntent is the sentinel error wrapped by
// UnsupportedIntentError.
var ErrUnsupportedIntent = errors.New("unsupported intent for ecosystem")

type (
	// Spec describes one command to generate.
	Spec struct {
		// Ecosystem is the primary tag of the target package.
		Ecosystem ecosystem.Tag
		// Intent is the abstract action to perform.
		Intent Intent
		// Platform selects shell conventions and wrapper script names.
		Platform Platform
		// PackageManager overrides the family default where one applies
		// (node and python families). Empty falls back per family.
		PackageManager string
		// UseWrapper selects the project-local wrapper script over the
		// system binary for maven and gradle.
		UseWrapper bool
	}

	// UnsupportedIntentError is returned when an ecosystem has no command
	// for the requested intent. It wraps ErrUnsupportedIntent for
	// errors.Is() compatibility.
	UnsupportedIntentError struct {
		Ecosystem ecosystem.Tag
		Intent    Intent
	}
)

// Generate assembles the shell command for a spec. The only hard failures
// are invalid enum inputs and intent/ecosystem pairs that genuinely have
// no command (maven has no lint story, unknown ecosystems have nothing).
func Generate(spec Spec) (string, error) {
	if ok, errs := spec.Intent.IsValid(); !ok {
		return "", errs[0]
	}
	if ok, errs := spec.Platform.IsValid(); !ok {
		return "", errs[0]
	}

	tokens, err := spec.tokens()
	if err != nil {
		return "", err
	}
	return joinTokens(tokens, spec.Platform), nil
}

// tokens resolves the command argv for the spec's ecosystem family.
func (s Spec) tokens() ([]string, error) {
	switch s.Ecosystem.Family() {
	case ecosystem.FamilyNode:
		return s.nodeTokens(), nil
	case ecosystem.FamilyPython:
		return s.pythonTokens(), nil
	case ecosystem.FamilyJVM:
		return s.jvmTokens()
	case ecosystem.FamilyRust:
		return s.cargoTokens(), nil
	case ecosystem.FamilyGo:
		return s.goTokens(), nil
	case ecosystem.FamilyDotnet:
		return s.dotnetTokens(), nil
	default:
		return nil, &UnsupportedIntentError{Ecosystem: s.Ecosystem, Intent: s.Intent}
	}
}

func (s Spec) nodeTokens() []string {
	pm := s.PackageManager
	if pm == "" {
		pm = "npm"
	}
	switch s.Intent {
	case IntentInstall:
		return []string{pm, "install"}
	case IntentBuild:
		return []string{pm, "run", "build"}
	case IntentTest:
		return []string{pm, "test"}
	default: // IntentLint
		return []string{pm, "run", "lint"}
	}
}

func (s Spec) pythonTokens() []string {
	pm := s.PackageManager
	if pm == "" {
		pm = "pip"
	}
	switch pm {
	case "uv":
		switch s.Intent {
		case IntentInstall:
			return []string{"uv", "sync"}
		case IntentBuild:
			return []string{"uv", "build"}
		case IntentTest:
			return []string{"uv", "run", "pytest"}
		default:
			return []string{"uv", "run", "ruff", "check", "."}
		}
	case "poetry":
		switch s.Intent {
		case IntentInstall:
			return []string{"poetry", "install"}
		case IntentBuild:
			return []string{"poetry", "build"}
		case IntentTest:
			return []string{"poetry", "run", "pytest"}
		default:
			return []string{"poetry", "run", "ruff", "check", "."}
		}
	case "pipenv":
		switch s.Intent {
		case IntentInstall:
			return []string{"pipenv", "install"}
		case IntentBuild:
			return []string{"pipenv", "run", "python", "-m", "build"}
		case IntentTest:
			return []string{"pipenv", "run", "pytest"}
		default:
			return []string{"pipenv", "run", "ruff", "check", "."}
		}
	default: // pip
		switch s.Intent {
		case IntentInstall:
			return []string{"pip", "install", "-r", "requirements.txt"}
		case IntentBuild:
			return []string{"python", "-m", "build"}
		case IntentTest:
			return []string{"pytest"}
		default:
			return []string{"ruff", "check", "."}
		}
	}
}

// jvmTokens covers the maven and gradle facets. Maven has no portable
// lint command; that is the one intent/ecosystem pair the engine refuses.
func (s Spec) jvmTokens() ([]string, error) {
	goos := s.Platform.GOOS()

	if isGradleTag(s.Ecosystem) {
		exe := "gradle"
		if s.UseWrapper {
			exe = platform.WrapperInvocation(goos, platform.GradleWrapperUnix, platform.GradleWrapperWindows)
		}
		switch s.Intent {
		case IntentInstall:
			return []string{exe, "dependencies"}, nil
		case IntentBuild:
			return []string{exe, "build"}, nil
		case IntentTest:
			return []string{exe, "test"}, nil
		default:
			return []string{exe, "check"}, nil
		}
	}

	exe := "mvn"
	if s.UseWrapper {
		exe = platform.WrapperInvocation(goos, platform.MavenWrapperUnix, platform.MavenWrapperWindows)
	}
	switch s.Intent {
	case IntentInstall:
		return []string{exe, "dependency:resolve"}, nil
	case IntentBuild:
		return []string{exe, "package"}, nil
	case IntentTest:
		return []string{exe, "test"}, nil
	default:
		return nil, &UnsupportedIntentError{Ecosystem: s.Ecosystem, Intent: s.Intent}
	}
}

func (s Spec) cargoTokens() []string {
	switch s.Intent {
	case IntentInstall:
		return []string{"cargo", "fetch"}
	case IntentBuild:
		return []string{"cargo", "build"}
	case IntentTest:
		return []string{"cargo", "test"}
	default:
		return []string{"cargo", "clippy"}
	}
}

func (s Spec) goTokens() []string {
	switch s.Intent {
	case IntentInstall:
		return []string{"go", "mod", "download"}
	case IntentBuild:
		return []string{"go", "build", "./..."}
	case IntentTest:
		return []string{"go", "test", "./..."}
	default:
		return []string{"go", "vet", "./..."}
	}
}

func (s Spec) dotnetTokens() []string {
	switch s.Intent {
	case IntentInstall:
		return []string{"dotnet", "restore"}
	case IntentBuild:
		return []string{"dotnet", "build"}
	case IntentTest:
		return []string{"dotnet", "test"}
	default:
		return []string{"dotnet", "format"}
	}
}

func isGradleTag(tag ecosystem.Tag) bool {
	switch tag {
	case ecosystem.TagGradle, ecosystem.TagGradleKotlinDSL, ecosystem.TagGradleWrapper:
		return true
	default:
		return false
	}
}

// joinTokens assembles argv into one command line. POSIX targets get
// shell-safe quoting; win32 joins verbatim since cmd and PowerShell have
// no single quoting discipline and the tokens are static command words.
func joinTokens(tokens []string, plat Platform) string {
	if plat == PlatformWin32 {
		return strings.Join(tokens, " ")
	}

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		q, err := syntax.Quote(tok, syntax.LangPOSIX)
		if err != nil {
			q = tok
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

// Error implements the error interface for UnsupportedIntentError.
func (e *UnsupportedIntentError) Error() string {
	return fmt.Sprintf("no %s command for ecosystem %q", e.Intent, e.Ecosystem)
}

// Unwrap returns ErrUnsupportedIntent for errors.Is() compatibility.
func (e *UnsupportedIntentError) Unwrap() error { return ErrUnsupportedIntent }
