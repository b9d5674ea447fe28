// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/bartekus/scriptcheck/cmd/scriptcheck/commands"
	"github.com/bartekus/scriptcheck/cmd/scriptcheck/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		if !clierr.IsSilent(err) {
			fmt.Fprintln(os.Stderr, "scriptcheck:", err)
		}
		os.Exit(clierr.ExitCodeOf(err))
	}
}
