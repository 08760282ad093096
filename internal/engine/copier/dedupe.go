package copier

import (
	"os"
	"slices"
	"strings"
)

// Dedupe sorts paths and drops every path equal to, or nested under, a path
// already kept. Containment is bounded by the path separator, so "a" never
// swallows "ab".
func Dedupe(paths []string) []string {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)

	kept := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if !slices.ContainsFunc(kept, func(k string) bool { return contains(k, p) }) {
			kept = append(kept, p)
		}
	}
	return kept
}

func contains(parent, p string) bool {
	return p == parent || strings.HasPrefix(p, parent+string(os.PathSeparator))
}
