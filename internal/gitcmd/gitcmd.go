// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gitcmd runs the git command line tool.
//
// Callers depend on the narrow [Runner] interface so tests can substitute a
// fake without a git binary or repository.
package gitcmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner runs git with the given arguments and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Exec is the Runner backed by a real git binary.
type Exec struct {
	// Dir is the working directory for git. Empty means the process cwd.
	Dir string

	// Timeout bounds each invocation. Zero means no limit beyond ctx.
	Timeout time.Duration
}

var _ Runner = (*Exec)(nil)

// New returns an Exec rooted at dir.
func New(dir string) *Exec {
	return &Exec{Dir: dir}
}

// Run executes git and returns stdout. A non-zero exit is reported as *Error.
func (e *Exec) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := e.bound(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.Dir
	out, err := cmd.Output()
	if err != nil {
		gerr := &Error{Args: args, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			gerr.Stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return string(out), gerr
	}
	return string(out), nil
}

func (e *Exec) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout > 0 {
		return context.WithTimeout(ctx, e.Timeout)
	}
	return ctx, func() {}
}

// Error describes a failed git invocation.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
