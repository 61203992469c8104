// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"workscope-cli/internal/hook"
)

// hookCmd runs the editor/agent hook bridge.
var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run as an editor/agent hook: pass stdin through, advise on stderr",
	Long: `Read one JSON hook event from stdin and write it to stdout unmodified.
Workspace and ecosystem context for the touched file goes to stderr as
advisory log lines, so the hosting tool's own pipeline is never
disturbed.

The bridge never fails the hosting tool: malformed events and detection
trouble are logged and swallowed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()

		logger := log.New(cmd.ErrOrStderr())
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		b := &hook.Bridge{
			Detector: app.Detector,
			Resolver: app.Resolver,
			Logger:   logger,
		}
		return b.Run(os.Stdin, cmd.OutOrStdout())
	},
}
