// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"workscope-cli/internal/detect"
	"workscope-cli/internal/ecosystem"
)

// setupCmd summarizes the workspace around the current directory.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Detect and summarize the workspace around the current directory",
	Long: `Detect the workspace around the current directory and print a summary:
the workspace root, the managing tool (pnpm, nx, lerna, yarn, turborepo,
or none), and every member package with its ecosystems and package
manager.`,
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

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, TitleStyle.Render("Workspace"))
		fmt.Fprintf(out, "  root: %s\n", CmdStyle.Render(ctx.Root.String()))
		fmt.Fprintf(out, "  kind: %s\n", renderKind(ctx.Kind))
		fmt.Fprintln(out)

		fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Packages (%d)", len(ctx.Packages))))
		for _, pkg := range ctx.Packages {
			printPackage(cmd, app, pkg)
		}
		return nil
	},
}

func renderKind(kind ecosystem.WorkspaceKind) string {
	if kind == ecosystem.KindNone {
		return SubtitleStyle.Render(kind.String())
	}
	return SuccessStyle.Render(kind.String())
}

func printPackage(cmd *cobra.Command, app *App, pkg detect.Package) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  %s  %s\n", SuccessStyle.Render("●"), pkg.Name)
	fmt.Fprintf(out, "     path: %s\n", VerboseStyle.Render(pkg.Path.String()))

	tags := make([]string, len(pkg.Tags))
	for i, tag := range pkg.Tags {
		tags[i] = tag.String()
	}
	if len(tags) == 0 {
		fmt.Fprintf(out, "     ecosystems: %s\n", WarningStyle.Render("none detected"))
	} else {
		fmt.Fprintf(out, "     ecosystems: %s\n", strings.Join(tags, ", "))
	}

	if pm := app.packageManagerFor(pkg); pm != "" {
		fmt.Fprintf(out, "     package manager: %s\n", CmdStyle.Render(pm))
	}
}
