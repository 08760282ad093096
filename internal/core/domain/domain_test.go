package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/zerr"
)

func entries(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func names(sigs []domain.StackSignature) []string {
	out := make([]string, 0, len(sigs))
	for _, s := range sigs {
		out = append(out, s.Name)
	}
	return out
}

func TestLookupAll(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []string
	}{
		{name: "nothing", entries: []string{"README.md"}, want: []string{}},
		{name: "pnpm", entries: []string{"pnpm-lock.yaml", "src"}, want: []string{"pnpm"}},
		{name: "registry order wins over input order", entries: []string{"Cargo.lock", "package-lock.json"}, want: []string{"npm", "rust"}},
		{name: "orchestrator first", entries: []string{"pnpm-lock.yaml", "turbo.json"}, want: []string{"turborepo", "pnpm"}},
		{name: "any marker matches", entries: []string{"bun.lockb"}, want: []string{"bun"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(domain.LookupAll(entries(tt.entries...)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecipes_OrchestratorsPrecedePackageManagers(t *testing.T) {
	order := names(domain.Recipes())
	index := func(name string) int {
		for i, n := range order {
			if n == name {
				return i
			}
		}
		t.Fatalf("recipe %q missing", name)
		return -1
	}

	for _, orchestrator := range []string{"turborepo", "nx"} {
		for _, pm := range []string{"pnpm", "bun", "yarn", "npm"} {
			assert.Less(t, index(orchestrator), index(pm))
		}
	}
}

func TestRecipes_AreCopies(t *testing.T) {
	first := domain.Recipes()
	first[0].Config.Patterns[0] = "mutated"

	again, ok := domain.LookupRecipe(first[0].Name)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", again.Config.Patterns[0])
}

func TestLookupRecipe_Unknown(t *testing.T) {
	_, ok := domain.LookupRecipe("cobol")
	assert.False(t, ok)
}

func TestMatchedMarkers(t *testing.T) {
	sig, ok := domain.LookupRecipe("gradle")
	require.True(t, ok)
	assert.Equal(t, []string{"gradlew", "build.gradle.kts"}, sig.MatchedMarkers(entries("build.gradle.kts", "gradlew")))
}

func TestUnionPatterns(t *testing.T) {
	got := domain.UnionPatterns([]string{"node_modules", "dist"}, []string{"target", "node_modules"}, nil)
	assert.Equal(t, []string{"node_modules", "dist", "target"}, got)
	assert.Empty(t, domain.UnionPatterns())
}

func TestNewCacheConfig_RemovesDuplicates(t *testing.T) {
	cfg := domain.NewCacheConfig("x", "", "a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, cfg.Patterns)
	assert.False(t, cfg.HasCommand())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{
			name: "bare sentinel",
			err:  domain.ErrWorkingCopyNotFound,
			want: domain.KindNotFound,
		},
		{
			name: "failure with cause",
			err:  domain.Fail(domain.ErrReconcileFailed, zerr.With(zerr.Wrap(errors.New("exit status 2"), "command failed"), "exit_code", 2)),
			want: domain.KindReconcileFailed,
		},
		{
			name: "wrapped failure",
			err:  zerr.Wrap(domain.Fail(domain.ErrConfigSyntax, errors.New("yaml: line 1")), "failed to detect"),
			want: domain.KindConfigSyntax,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: domain.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
}

func TestFailure(t *testing.T) {
	cause := errors.New("permission denied")
	err := domain.Fail(domain.ErrCopyFailed, cause)

	require.ErrorIs(t, err, domain.ErrCopyFailed)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrReconcileFailed)
	assert.Equal(t, "copy operation failed: permission denied", err.Error())

	assert.Equal(t, domain.ErrInvalidArguments, domain.Fail(domain.ErrInvalidArguments, nil))
}

func TestDetectionResult(t *testing.T) {
	none := domain.DetectionResult{Method: domain.MethodNone}
	assert.False(t, none.Found())
	assert.Nil(t, none.Patterns())

	cfg := domain.NewCacheConfig("", "", "dist")
	found := domain.DetectionResult{Method: domain.MethodGitignore, Config: &cfg}
	assert.True(t, found.Found())
	assert.Equal(t, []string{"dist"}, found.Patterns())
}
