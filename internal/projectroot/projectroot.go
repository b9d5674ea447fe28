// Package projectroot locates the repository a check runs against.
package projectroot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bartekus/scriptcheck/internal/gitcmd"
)

// ErrNotRepository is returned when git reports no work tree.
var ErrNotRepository = errors.New("not inside a git work tree")

// Find returns the absolute top-level directory of the work tree git runs in.
// Paths printed by git diff are relative to it, not to the working directory.
func Find(ctx context.Context, git gitcmd.Runner) (string, error) {
	out, err := git.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotRepository, err)
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", ErrNotRepository
	}
	return filepath.Clean(root), nil
}
