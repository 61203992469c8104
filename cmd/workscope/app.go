// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"workscope-cli/internal/cache"
	"workscope-cli/internal/config"
	"workscope-cli/internal/detect"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/resolve"
	"workscope-cli/pkg/types"
)

// App bundles the wired engine components the CLI commands share.
type App struct {
	Config   *config.Config
	Detector *detect.Detector
	Resolver *resolve.Resolver
	Logger   *log.Logger
}

// newApp builds the engine from the loaded configuration. A failed config
// load degrades to built-in defaults; the root initializer has already
// warned about it.
func newApp() *App {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	var store cache.Store = cache.NewFileStore()
	if !cfg.Cache.Enabled {
		// Detection still runs; records just never touch disk.
		store = cache.NewMemoryStore()
	}

	detector := detect.New(store)
	detector.Logger = logger
	if cfg.Cache.HashStrategy != "" {
		detector.Strategy = cfg.Cache.HashStrategy
	}
	if cfg.MaxWalkDepth > 0 {
		detector.MaxWalkDepth = cfg.MaxWalkDepth
	}

	resolver := &resolve.Resolver{}
	if globalPath, err := config.GlobalSettingsPath(); err == nil {
		resolver.GlobalSettingsPath = types.FilesystemPath(globalPath)
	}

	return &App{
		Config:   cfg,
		Detector: detector,
		Resolver: resolver,
		Logger:   logger,
	}
}

// workingDir resolves the directory commands operate on.
func workingDir() (types.FilesystemPath, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return types.FilesystemPath(wd), nil
}

// packageManagerFor applies configured fallbacks on top of the detector's
// per-package inference.
func (a *App) packageManagerFor(pkg detect.Package) string {
	if pkg.PackageManager != "" {
		return pkg.PackageManager
	}
	if len(pkg.Tags) == 0 {
		return ""
	}
	switch pkg.Tags[0].Family() {
	case ecosystem.FamilyNode:
		return a.Config.Defaults.NodePackageManager
	case ecosystem.FamilyPython:
		return a.Config.Defaults.PythonPackageManager
	default:
		return ""
	}
}

// toolsFor lists the host tools a package's ecosystems rely on, in probe
// order: the package manager first, then the runtime/build tools.
func toolsFor(pkg detect.Package, pm string) []types.ToolName {
	var tools []types.ToolName
	seen := map[types.ToolName]bool{}
	add := func(name string) {
		if name == "" || seen[types.ToolName(name)] {
			return
		}
		seen[types.ToolName(name)] = true
		tools = append(tools, types.ToolName(name))
	}

	for _, tag := range pkg.Tags {
		switch tag.Family() {
		case ecosystem.FamilyNode:
			add(pm)
			add("node")
		case ecosystem.FamilyPython:
			add(pm)
			add("python3")
		case ecosystem.FamilyJVM:
			if tag == ecosystem.TagMaven {
				add("mvn")
			}
			if tag == ecosystem.TagGradle || tag == ecosystem.TagGradleKotlinDSL {
				add("gradle")
			}
			add("java")
		case ecosystem.FamilyRust:
			add("cargo")
		case ecosystem.FamilyGo:
			add("go")
		case ecosystem.FamilyDotnet:
			add("dotnet")
		}
	}
	return tools
}
