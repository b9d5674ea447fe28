package diffrange

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bartekus/scriptcheck/internal/ciconfig"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		env        ciconfig.Env
		override   string
		wantExpr   string
		wantPolicy Policy
	}{
		{
			name:       "pull request with base branch",
			env:        ciconfig.Env{EventName: "pull_request", BaseRef: "main", Before: "aaa", SHA: "bbb"},
			wantExpr:   "origin/main...HEAD",
			wantPolicy: PolicyPullRequest,
		},
		{
			name:       "pull request without base branch falls through to push",
			env:        ciconfig.Env{EventName: "pull_request", Before: "aaa", SHA: "bbb"},
			wantExpr:   "aaa...bbb",
			wantPolicy: PolicyPush,
		},
		{
			name:       "base branch ignored for other events",
			env:        ciconfig.Env{EventName: "push", BaseRef: "main", Before: "aaa", SHA: "bbb"},
			wantExpr:   "aaa...bbb",
			wantPolicy: PolicyPush,
		},
		{
			name:       "pull_request_target is not a pull request",
			env:        ciconfig.Env{EventName: "pull_request_target", BaseRef: "main"},
			wantExpr:   Fallback,
			wantPolicy: PolicyFallback,
		},
		{
			name:       "null before sha",
			env:        ciconfig.Env{EventName: "push", Before: NullSHA, SHA: "bbb"},
			wantExpr:   Fallback,
			wantPolicy: PolicyFallback,
		},
		{
			name:       "missing current sha",
			env:        ciconfig.Env{EventName: "push", Before: "aaa"},
			wantExpr:   Fallback,
			wantPolicy: PolicyFallback,
		},
		{
			name:       "empty environment",
			env:        ciconfig.Env{},
			wantExpr:   "HEAD~1...HEAD",
			wantPolicy: PolicyFallback,
		},
		{
			name:       "override wins",
			env:        ciconfig.Env{EventName: "pull_request", BaseRef: "main"},
			override:   " v1.0...v1.1 ",
			wantExpr:   "v1.0...v1.1",
			wantPolicy: PolicyOverride,
		},
		{
			name:       "blank override ignored",
			env:        ciconfig.Env{},
			override:   "   ",
			wantExpr:   Fallback,
			wantPolicy: PolicyFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.env, tt.override)
			assert.Equal(t, tt.wantExpr, got.Expr)
			assert.Equal(t, tt.wantPolicy, got.Policy)
			assert.NotEmpty(t, got.String())
		})
	}
}
