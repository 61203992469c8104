// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"workscope-cli/internal/issue"
)

var (
	setupEcosystemDetect bool
	setupEcosystemJSON   bool

	// setupEcosystemCmd reports the ecosystems of the current directory.
	setupEcosystemCmd = &cobra.Command{
		Use:   "setup-ecosystem",
		Short: "Report the ecosystems detected for the current directory",
		Long: `Report the ecosystems detected for the current directory.

By default the stored detection record is shown when one exists and is
still valid. With --detect, the directory is re-scanned unconditionally
and the record refreshed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp()

			dir, err := workingDir()
			if err != nil {
				return err
			}

			if !setupEcosystemDetect {
				if rec, ok := app.Detector.Store.Get(dir); ok {
					return printEcosystems(cmd, rec.Tags, setupEcosystemJSON)
				}
			}

			tags := app.Detector.TagsFor(dir)
			if len(tags) == 0 {
				renderIssue(cmd.ErrOrStderr(), issue.NoEcosystemDetectedId)
				return issue.NewErrorContext().
					WithOperation("detect ecosystems").
					WithResource(dir.String()).
					WithSuggestion("Run from the project directory, not its parent").
					WithSuggestion("Check 'workscope setup' for the workspace view").
					Wrap(fmt.Errorf("no recognized manifests in %s", dir)).
					BuildError()
			}
			return printEcosystems(cmd, tags, setupEcosystemJSON)
		},
	}
)

func init() {
	setupEcosystemCmd.Flags().BoolVar(&setupEcosystemDetect, "detect", false, "re-detect even when a valid record exists")
	setupEcosystemCmd.Flags().BoolVar(&setupEcosystemJSON, "json", false, "emit the tag list as JSON")
}

func printEcosystems[T ~string](cmd *cobra.Command, tags []T, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		strs := make([]string, len(tags))
		for i, tag := range tags {
			strs[i] = string(tag)
		}
		enc := json.NewEncoder(out)
		return enc.Encode(map[string]any{"types": strs})
	}

	strs := make([]string, len(tags))
	for i, tag := range tags {
		strs[i] = string(tag)
	}
	fmt.Fprintln(out, strings.Join(strs, "\n"))
	return nil
}
