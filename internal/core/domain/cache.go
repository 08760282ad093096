package domain

import "slices"

// CacheConfig describes which paths of a working copy hold regenerable
// artifacts and how to reconcile them after they have been copied.
type CacheConfig struct {
	// Patterns are relative paths or glob expressions, free of duplicates.
	Patterns []string
	// Command is the reconciliation command; empty means none.
	Command string
	// Recipe names the recipe the configuration originates from, if any.
	Recipe string
}

// NewCacheConfig builds a CacheConfig with duplicate patterns removed.
func NewCacheConfig(recipe, command string, patterns ...string) CacheConfig {
	return CacheConfig{
		Patterns: UnionPatterns(patterns),
		Command:  command,
		Recipe:   recipe,
	}
}

// HasCommand reports whether a reconciliation command is configured.
func (c CacheConfig) HasCommand() bool {
	return c.Command != ""
}

// Clone returns a copy that shares no memory with c.
func (c CacheConfig) Clone() CacheConfig {
	c.Patterns = slices.Clone(c.Patterns)
	return c
}

// UnionPatterns concatenates the lists, keeping the first occurrence of each pattern.
func UnionPatterns(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, p := range list {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
