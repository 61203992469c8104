// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"workscope-cli/internal/issue"
)

// renderIssue prints the catalog entry for a known failure class, ahead of
// the error the caller is about to return. Rendering trouble falls back to
// the raw markdown; the entry is advisory and never blocks the failure
// path.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		rendered = string(entry.MarkdownMsg())
	}
	fmt.Fprint(w, rendered)
}
