// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "workscope-cli/cmd/workscope"
)

func main() {
	cmd.Execute()
}
