// Package diffrange decides which revisions a check compares.
package diffrange

import (
	"strings"

	"github.com/bartekus/scriptcheck/internal/ciconfig"
)

// NullSHA is the all-zero commit git hosts send as "before" for a new branch.
const NullSHA = "0000000000000000000000000000000000000000"

// Fallback covers exactly the last commit.
const Fallback = "HEAD~1...HEAD"

// Policy names the rule that produced a Range.
type Policy string

const (
	PolicyOverride    Policy = "override"
	PolicyPullRequest Policy = "pull_request"
	PolicyPush        Policy = "push"
	PolicyFallback    Policy = "fallback"
)

// Range is a git revision range expression.
type Range struct {
	Expr   string
	Policy Policy
}

func (r Range) String() string { return r.Expr }

// Resolve picks the range for env. A non-blank override wins. Otherwise a pull
// request compares against the merge base with origin/<base>, a push compares
// before and after, and anything else falls back to the last commit. The
// result is never empty.
func Resolve(env ciconfig.Env, override string) Range {
	if o := strings.TrimSpace(override); o != "" {
		return Range{Expr: o, Policy: PolicyOverride}
	}

	if env.EventName == "pull_request" && env.BaseRef != "" {
		return Range{Expr: "origin/" + env.BaseRef + "...HEAD", Policy: PolicyPullRequest}
	}

	if env.Before != "" && env.Before != NullSHA && env.SHA != "" {
		return Range{Expr: env.Before + "..." + env.SHA, Policy: PolicyPush}
	}

	return Range{Expr: Fallback, Policy: PolicyFallback}
}
