// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/scriptcheck/internal/report"
	"github.com/bartekus/scriptcheck/internal/scanner"
)

// version is set at build time with -ldflags "-X .../commands.version=...".
var version = "0.0.0-dev"

// globalOptions are the persistent flags that are not configuration keys.
type globalOptions struct {
	verbose    bool
	configFile string
}

// NewRootCmd constructs the scriptcheck root Cobra command.
// Running it without a subcommand performs the check.
func NewRootCmd() *cobra.Command {
	report.ToolVersion = version

	opts := &globalOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:   "scriptcheck",
		Short: "Fail CI when changed files contain Cyrillic characters",
		Long: `scriptcheck lists the files changed in the current pull request or push,
scans every line for characters in the Cyrillic block (U+0400-U+04FF) and
exits non-zero when any are found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, all)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	pf.StringVar(&opts.configFile, "config", "", "config file (default .scriptcheck.yaml in the working directory)")
	pf.String("format", "text", "report format: "+strings.Join(report.Formats, ", "))
	pf.String("out", "", "write the report to a file instead of stdout")
	pf.String("range", "", "git revision range to diff, overriding CI detection")
	pf.StringSlice("ext", nil, fmt.Sprintf("file extensions to scan (default %d built-in extensions)", len(scanner.DefaultExtensions())))
	pf.StringSlice("exclude-dir", nil, "directory names to skip")

	cmd.Flags().BoolVar(&all, "all", false, "scan every tracked file instead of the diff")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newRangeCmd(opts))
	cmd.AddCommand(newExtensionsCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of scriptcheck",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "scriptcheck version %s\n", version)
		},
	})

	return cmd
}
