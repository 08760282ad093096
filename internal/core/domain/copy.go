package domain

// ProgressFunc is called with (index, total, path) before each item is
// attempted, and once more with index == total and an empty path when
// every item has been resolved.
type ProgressFunc func(index, total int, path string)

// CopyOptions configures a copy of cache artifacts.
type CopyOptions struct {
	// Reflink enables copy-on-write clones where the filesystem supports them.
	Reflink bool
	// Jobs bounds the number of items copied concurrently.
	Jobs int
	// Progress receives per-item progress. May be nil.
	Progress ProgressFunc
	// OnCopy receives the copy result before reconciliation. May be nil.
	OnCopy func(res CopyResult)
	// OnReconcile is called with the directory and command right before
	// reconciliation starts. May be nil.
	OnReconcile func(dir, command string)
}

// CopyFailure records a single path that could not be copied.
type CopyFailure struct {
	Path string
	Err  error
}

// CopyResult reports what a copy did. Copied is a subset of Attempted in the
// same relative order; a path missing from Copied was skipped or failed.
type CopyResult struct {
	Patterns  []string
	Attempted []string
	Copied    []string
	Failed    []CopyFailure
}
