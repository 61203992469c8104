// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"workscope-cli/internal/issue"
	"workscope-cli/internal/tooling"
)

// doctorCmd checks the host environment against the detected workspace.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check required tools and settings for the detected workspace",
	Long: `Check the host environment against the detected workspace: probe every
tool the member packages rely on, and report settings layers that could
not be read. The doctor never fails; missing tools are findings, not
errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		out := cmd.OutOrStdout()

		dir, err := workingDir()
		if err != nil {
			return err
		}

		ctx, err := app.Detector.Detect(dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, TitleStyle.Render("Tools"))
		missing := 0
		for _, pkg := range ctx.Packages {
			pm := app.packageManagerFor(pkg)
			for _, status := range tooling.ProbeAll(cmd.Context(), toolsFor(pkg, pm)) {
				if status.Installed {
					version := status.Version
					if version == "" {
						version = "version unknown"
					}
					fmt.Fprintf(out, "  %s %-10s %s\n", SuccessStyle.Render("✓"), status.Name, VerboseStyle.Render(version))
				} else {
					missing++
					fmt.Fprintf(out, "  %s %-10s %s\n", ErrorStyle.Render("✗"), status.Name, WarningStyle.Render("not found on PATH"))
				}
			}
		}
		if len(ctx.Packages) == 0 {
			fmt.Fprintln(out, SubtitleStyle.Render("  no packages detected"))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, TitleStyle.Render("Settings"))
		res := app.Resolver.Resolve(ctx.Root, dir)
		for _, layer := range res.Layers {
			fmt.Fprintf(out, "  %s\n", VerboseStyle.Render(layer.String()))
		}
		for _, warning := range res.Warnings {
			fmt.Fprintf(out, "  %s %s\n", WarningStyle.Render("!"), warning)
		}
		if len(res.Warnings) > 0 {
			renderIssue(cmd.ErrOrStderr(), issue.SettingsParseErrorId)
		}

		fmt.Fprintln(out)
		if missing > 0 {
			fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("%d tool(s) missing", missing)))
		} else {
			fmt.Fprintln(out, SuccessStyle.Render("environment looks good"))
		}
		return nil
	},
}
