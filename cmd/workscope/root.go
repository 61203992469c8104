// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for workscope.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"workscope-cli/internal/config"
	"workscope-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "workscope",
		Short: "Workspace and ecosystem resolution for project trees",
		Long: TitleStyle.Render("workscope") + SubtitleStyle.Render(" - workspace and ecosystem resolution for project trees") + `

workscope inspects a directory tree and answers three questions: which
ecosystems live here (Node, Python, Maven, Gradle, Rust, Go, .NET),
whether a workspace tool manages the tree (pnpm, nx, lerna, yarn,
turborepo), and which concrete command realizes an abstract intent
(install, build, test, lint) for each package.

Detection results are cached per directory in .workscope/ecosystems.json
and invalidated by manifest content hashes, so repeated queries stay
cheap even from editor hooks.

` + SubtitleStyle.Render("Quick Start:") + `
  1. cd into any project or monorepo
  2. Run: workscope setup
  3. Generate commands with: workscope command <intent>

` + SubtitleStyle.Render("Examples:") + `
  workscope setup                     Summarize the workspace
  workscope setup-ecosystem --detect  Re-detect ecosystems for this directory
  workscope command test              Print the test command for this package
  workscope doctor                    Check required tools on PATH
  workscope config show               Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/workscope/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(setupPmCmd)
	rootCmd.AddCommand(setupEcosystemCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		if verbose {
			renderIssue(os.Stderr, issue.ConfigLoadFailedId)
		}
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
