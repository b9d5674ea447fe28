// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/scriptcheck/cmd/scriptcheck/internal/clierr"
	"github.com/bartekus/scriptcheck/internal/check"
	"github.com/bartekus/scriptcheck/internal/ciconfig"
	"github.com/bartekus/scriptcheck/internal/gitcmd"
	"github.com/bartekus/scriptcheck/internal/linescan"
	"github.com/bartekus/scriptcheck/internal/logger"
	"github.com/bartekus/scriptcheck/internal/projectroot"
	"github.com/bartekus/scriptcheck/internal/report"
	"github.com/bartekus/scriptcheck/internal/scanner"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Scan changed files for Cyrillic characters",
		Long: `Scan changed files for Cyrillic characters.

The diff range is taken from the GitHub Actions environment:
  pull_request with GITHUB_BASE_REF   origin/<base>...HEAD
  GITHUB_EVENT_BEFORE and GITHUB_SHA  <before>...<sha>
  otherwise                           HEAD~1...HEAD

Exit status is 0 when nothing is found and 1 on violations or errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "scan every tracked file instead of the diff")
	return cmd
}

// loadConfig reads the effective configuration and initializes logging.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*ciconfig.Config, error) {
	cfg, err := ciconfig.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if opts.verbose {
		if err := logger.SetLevel("debug"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runCheck returns a silent exit error for violations and wraps every other
// failure with exit status 1.
func runCheck(cmd *cobra.Command, opts *globalOptions, all bool) error {
	failed, err := performCheck(cmd, opts, all)
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, "check failed", err)
	}
	if failed {
		return clierr.Silent(clierr.ExitFailure)
	}
	return nil
}

func performCheck(cmd *cobra.Command, opts *globalOptions, all bool) (bool, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return false, err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.L()
	ctx := cmd.Context()

	wd, err := os.Getwd()
	if err != nil {
		return false, err
	}
	wdGit := gitcmd.New(wd)
	wdGit.Timeout = cfg.GitTimeout
	root, err := projectroot.Find(ctx, wdGit)
	if err != nil {
		return false, err
	}
	log.Debug("repository root", zap.String("path", root))

	git := gitcmd.New(root)
	git.Timeout = cfg.GitTimeout
	files := os.DirFS(root)

	runner := check.New(check.Deps{
		Env:           cfg.CI,
		RangeOverride: cfg.Range,
		Scanner: scanner.New(git, files, scanner.FilterOptions{
			ExcludeDirs:       cfg.ExcludeDirs,
			IncludeExtensions: cfg.Extensions,
		}, log.Named("scanner")),
		Matcher: linescan.NewMatcher(
			linescan.WithMaxPreview(cfg.MaxPreview),
			linescan.WithLogger(log.Named("linescan")),
		),
		Files:  files,
		Logger: log.Named("check"),
		All:    all,
	})

	rep, err := runner.Run(ctx)
	if err != nil {
		return false, err
	}

	if err := report.WriteReport(rep, cfg.Format, cfg.Out, cmd.OutOrStdout()); err != nil {
		return false, fmt.Errorf("writing report: %w", err)
	}
	return rep.Outcome.Failed(), nil
}
