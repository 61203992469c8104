// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"workscope-cli/internal/command"
	"workscope-cli/internal/ecosystem"
	"workscope-cli/internal/issue"
	"workscope-cli/pkg/types"
)

var (
	commandPlatform  string
	commandNoWrapper bool

	// commandCmd generates the concrete command for an abstract intent.
	commandCmd = &cobra.Command{
		Use:   "command <intent>",
		Short: "Generate the concrete command for an intent (install, build, test, lint)",
		Long: `Generate the concrete shell command realizing an abstract intent for the
package in the current directory. The ecosystem, package manager, and
wrapper scripts are all resolved from detection; the command is printed
to stdout and can be piped straight into a shell.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"install", "build", "test", "lint"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp()

			intent := command.Intent(args[0])
			if ok, errs := intent.IsValid(); !ok {
				return &ExitError{Code: types.ExitCode(2), Err: errs[0]}
			}

			plat := command.PlatformFromGOOS(runtime.GOOS)
			if commandPlatform != "" {
				plat = command.Platform(commandPlatform)
				if ok, errs := plat.IsValid(); !ok {
					return &ExitError{Code: types.ExitCode(2), Err: errs[0]}
				}
			}

			dir, err := workingDir()
			if err != nil {
				return err
			}

			ctx, err := app.Detector.Detect(dir)
			if err != nil {
				return err
			}
			pkg, ok := ctx.PackageFor(dir)
			if !ok && len(ctx.Packages) > 0 {
				pkg = ctx.Packages[0]
			}
			if len(pkg.Tags) == 0 {
				renderIssue(cmd.ErrOrStderr(), issue.NoEcosystemDetectedId)
				return issue.NewErrorContext().
					WithOperation("generate command").
					WithResource(dir.String()).
					WithSuggestion("Run from the project directory, not its parent").
					WithSuggestion("Check 'workscope setup-ecosystem --detect'").
					Wrap(fmt.Errorf("no ecosystem detected in %s", dir)).
					BuildError()
			}

			useWrapper := app.Config.Wrapper.Prefer && !commandNoWrapper && hasWrapperTag(pkg.Tags)

			line, err := command.Generate(command.Spec{
				Ecosystem:      pkg.Tags[0],
				Intent:         intent,
				Platform:       plat,
				PackageManager: app.packageManagerFor(pkg),
				UseWrapper:     useWrapper,
			})
			if err != nil {
				if errors.Is(err, command.ErrUnsupportedIntent) {
					renderIssue(cmd.ErrOrStderr(), issue.UnsupportedIntentId)
					return issue.NewErrorContext().
						WithOperation("generate command").
						WithResource(pkg.Path.String()).
						WithSuggestion("Use the ecosystem's own tooling for this intent").
						WithSuggestion("See 'workscope setup' for what the package supports").
						Wrap(err).
						BuildError()
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
)

func init() {
	commandCmd.Flags().StringVar(&commandPlatform, "platform", "", "target platform: linux, darwin, or win32 (default: current)")
	commandCmd.Flags().BoolVar(&commandNoWrapper, "no-wrapper", false, "use the system binary even when a wrapper script exists")
}

// hasWrapperTag reports whether the package carries a build-tool wrapper
// script.
func hasWrapperTag(tags []ecosystem.Tag) bool {
	for _, tag := range tags {
		if tag == ecosystem.TagMavenWrapper || tag == ecosystem.TagGradleWrapper {
			return true
		}
	}
	return false
}
