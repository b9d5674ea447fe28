// Package check runs the changed-file script check end to end.
package check

import (
	"context"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/bartekus/scriptcheck/internal/ciconfig"
	"github.com/bartekus/scriptcheck/internal/diffrange"
	"github.com/bartekus/scriptcheck/internal/linescan"
	"github.com/bartekus/scriptcheck/internal/report"
	"github.com/bartekus/scriptcheck/internal/scanner"
)

// Deps contains the collaborators a Runner needs.
type Deps struct {
	Env           ciconfig.Env
	RangeOverride string
	Scanner       *scanner.Scanner
	Matcher       *linescan.Matcher
	// Files is rooted at the repository root.
	Files  fs.FS
	Logger *zap.Logger
	// All scans every tracked file instead of the diff.
	All bool
}

// Runner resolves the range, lists files and scans them in order.
type Runner struct {
	deps Deps
	log  *zap.Logger
}

// New creates a Runner.
func New(deps Deps) *Runner {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{deps: deps, log: log}
}

// Range returns the range the runner will diff.
func (r *Runner) Range() diffrange.Range {
	return diffrange.Resolve(r.deps.Env, r.deps.RangeOverride)
}

// Run performs one check. The returned report is nil only when err is non-nil.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	rep := &report.Report{}

	var (
		files []string
		err   error
	)
	if r.deps.All {
		r.log.Debug("scanning all tracked files")
		files, err = r.deps.Scanner.TrackedFiles(ctx)
	} else {
		rng := r.Range()
		rep.Range = rng.Expr
		r.log.Debug("resolved diff range",
			zap.String("range", rng.Expr),
			zap.String("policy", string(rng.Policy)))
		files, err = r.deps.Scanner.ChangedFiles(ctx, rng.Expr)
	}
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	rep.Files = files
	if len(files) == 0 {
		rep.Outcome = report.OutcomeNoFiles
		return rep, nil
	}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found := r.deps.Matcher.ScanFile(r.deps.Files, name)
		if len(found) > 0 {
			r.log.Debug("violations found", zap.String("path", name), zap.Int("count", len(found)))
		}
		rep.Violations = append(rep.Violations, found...)
	}

	if len(rep.Violations) > 0 {
		rep.Outcome = report.OutcomeViolations
	} else {
		rep.Outcome = report.OutcomeClean
	}
	return rep, nil
}
