package detection

import (
	"bufio"
	"strings"

	"go.trai.ch/twin/internal/core/domain"
)

// ignoreTargets maps ignored names to the cache targets they imply. An empty
// slice marks a name that is recognised but not worth linking.
var ignoreTargets = map[string][]string{
	"node_modules":  {"node_modules"},
	"dist":          {"dist"},
	"build":         {"build"},
	"target":        {"target"},
	".venv":         {".venv"},
	"venv":          {"venv"},
	".next":         {".next"},
	".turbo":        {".turbo"},
	".nx":           {".nx"},
	".gradle":       {".gradle"},
	"vendor":        {"vendor"},
	"_build":        {"_build"},
	"deps":          {"deps"},
	".build":        {".build"},
	".parcel-cache": {".parcel-cache"},

	"__pycache__":   {},
	".pytest_cache": {},
	".ruff_cache":   {},
	".mypy_cache":   {},
	"coverage":      {},
	".nyc_output":   {},
	".DS_Store":     {},
	"*.log":         {},
	".env":          {},
	"*.pyc":         {},
}

// Infer derives a cache configuration from the content of an ignore file.
// Comments, blank lines and negations are skipped; a leading or trailing
// slash is dropped before the lookup. It returns false when no line maps to
// a cache target.
func Infer(content string) (domain.CacheConfig, bool) {
	var targets []string

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		name := strings.TrimSuffix(strings.TrimPrefix(line, "/"), "/")
		targets = append(targets, ignoreTargets[name]...)
	}

	patterns := domain.UnionPatterns(targets)
	if len(patterns) == 0 {
		return domain.CacheConfig{}, false
	}
	return domain.CacheConfig{Patterns: patterns}, true
}
