package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PatternResolver = (*Resolver)(nil)

const globMeta = "*?[{\\"

// Resolver implements ports.PatternResolver. Literal patterns are checked
// with a single stat; glob patterns are matched with gobwas/glob while
// walking from the pattern's static prefix. Matching is case-sensitive and
// `**` spans zero or more path segments.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Expand resolves pattern against root. Matches are relative to root, use the
// OS separator, and are sorted. A matched directory is not searched further.
func (r *Resolver) Expand(root, pattern string) ([]string, error) {
	clean, err := normalizePattern(pattern)
	if err != nil {
		return nil, err
	}

	if !strings.ContainsAny(clean, globMeta) {
		return r.expandLiteral(root, clean)
	}

	matchers, err := compile(clean)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid glob pattern"), "pattern", pattern)
	}

	base := staticPrefix(clean)
	start := filepath.Join(root, filepath.FromSlash(base))
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		return nil, nil
	}

	match := func(rel string) bool {
		return slices.ContainsFunc(matchers, func(g glob.Glob) bool { return g.Match(rel) })
	}
	join := func(rel string) string {
		if base == "" {
			return rel
		}
		return base + "/" + rel
	}

	var matches []string
	descend := func(rel string, _ iofs.DirEntry) bool {
		return !match(join(rel))
	}
	for rel := range r.walker.Walk(start, descend) {
		if full := join(rel); match(full) {
			matches = append(matches, filepath.FromSlash(full))
		}
	}

	slices.Sort(matches)
	return matches, nil
}

func (r *Resolver) expandLiteral(root, rel string) ([]string, error) {
	native := filepath.FromSlash(rel)
	if _, err := os.Lstat(filepath.Join(root, native)); err != nil {
		if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, iofs.ErrPermission) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", rel)
	}
	return []string{native}, nil
}

// normalizePattern cleans pattern to slash form and rejects patterns that
// would reach outside the root or select the root itself.
func normalizePattern(pattern string) (string, error) {
	p := path.Clean(filepath.ToSlash(strings.TrimSpace(pattern)))
	switch {
	case p == "." || p == "":
		return "", zerr.With(zerr.New("pattern selects the whole project"), "pattern", pattern)
	case path.IsAbs(p) || filepath.IsAbs(pattern):
		return "", zerr.With(zerr.New("pattern must be relative"), "pattern", pattern)
	case p == ".." || strings.HasPrefix(p, "../"):
		return "", zerr.With(zerr.New("pattern escapes the project root"), "pattern", pattern)
	}
	return p, nil
}

// compile returns one matcher per way of collapsing `**/` segments, so that
// `**` also matches zero directories.
func compile(pattern string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, variant := range collapseVariants(pattern) {
		g, err := glob.Compile(variant, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func collapseVariants(pattern string) []string {
	idx := -1
	for i := 0; i+3 <= len(pattern); i++ {
		if pattern[i:i+3] == "**/" && (i == 0 || pattern[i-1] == '/') {
			idx = i
			break
		}
	}
	if idx < 0 {
		return []string{pattern}
	}

	head, tail := pattern[:idx+3], pattern[idx+3:]
	var out []string
	for _, rest := range collapseVariants(tail) {
		out = append(out, head+rest, pattern[:idx]+rest)
	}
	return out
}

// staticPrefix returns the leading directories of pattern that contain no
// glob syntax.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var prefix []string
	for _, s := range segments[:len(segments)-1] {
		if strings.ContainsAny(s, globMeta) {
			break
		}
		prefix = append(prefix, s)
	}
	return strings.Join(prefix, "/")
}
