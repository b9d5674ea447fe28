// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner lists the repository files a check should look at.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/bartekus/scriptcheck/internal/gitcmd"
)

// Scanner resolves changed or tracked files through git and keeps only those
// that still exist on disk and pass the filter options.
type Scanner struct {
	git  gitcmd.Runner
	fsys fs.FS
	opts FilterOptions
	log  *zap.Logger
}

// New creates a Scanner. fsys is rooted at the repository root; paths reported
// by git are looked up relative to it.
func New(git gitcmd.Runner, fsys fs.FS, opts FilterOptions, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		git:  git,
		fsys: fsys,
		opts: opts,
		log:  log,
	}
}

// ChangedFiles returns the files that differ across diffRange.
// Deleted files, directories and files outside the filter are dropped silently.
func (s *Scanner) ChangedFiles(ctx context.Context, diffRange string) ([]string, error) {
	// -z keeps names with non-ASCII bytes unquoted.
	out, err := s.git.Run(ctx, "diff", "--name-only", "-z", diffRange, "--")
	if err != nil {
		return nil, fmt.Errorf("listing changed files for %s: %w", diffRange, err)
	}
	return s.keep(splitNUL(out)), nil
}

// TrackedFiles returns every file tracked by git, filtered like ChangedFiles.
func (s *Scanner) TrackedFiles(ctx context.Context) ([]string, error) {
	out, err := s.git.Run(ctx, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("listing tracked files: %w", err)
	}
	return s.keep(splitNUL(out)), nil
}

func (s *Scanner) keep(names []string) []string {
	candidates := FilterFiles(names, s.opts)
	if len(candidates) < len(names) {
		s.log.Debug("dropped files outside the allow-list",
			zap.Int("listed", len(names)),
			zap.Int("kept", len(candidates)))
	}

	var files []string
	for _, name := range candidates {
		info, err := fs.Stat(s.fsys, name)
		if err != nil {
			s.log.Debug("skipping missing file", zap.String("path", name))
			continue
		}
		if info.IsDir() {
			s.log.Debug("skipping directory", zap.String("path", name))
			continue
		}
		files = append(files, name)
	}
	return files
}

func splitNUL(out string) []string {
	if out == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(out, "\x00") {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
