// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"workscope-cli/internal/issue"
	"workscope-cli/internal/tooling"
)

// setupPmCmd resolves the package manager for the current package.
var setupPmCmd = &cobra.Command{
	Use:   "setup-pm",
	Short: "Resolve the package manager for the current package",
	Long: `Resolve the package manager for the current package from lockfiles,
manifest declarations (package.json "packageManager"), and configured
defaults, then probe whether it is installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()

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

		pm := app.packageManagerFor(pkg)
		if pm == "" {
			return issue.NewErrorContext().
				WithOperation("resolve package manager").
				WithResource(pkg.Path.String()).
				WithSuggestion("Run 'workscope setup-ecosystem --detect' to check detection").
				WithSuggestion("Set defaults.node_package_manager or defaults.python_package_manager in config.cue").
				Wrap(fmt.Errorf("no package manager for ecosystems %v", pkg.Tags)).
				BuildError()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "package manager: %s\n", CmdStyle.Render(pm))

		for _, status := range tooling.ProbeAll(cmd.Context(), toolsFor(pkg, pm)) {
			if status.Installed {
				version := status.Version
				if version == "" {
					version = "version unknown"
				}
				fmt.Fprintf(out, "  %s %s (%s)\n", SuccessStyle.Render("✓"), status.Name, VerboseStyle.Render(version))
			} else {
				fmt.Fprintf(out, "  %s %s not found on PATH\n", ErrorStyle.Render("✗"), status.Name)
			}
		}
		return nil
	},
}
