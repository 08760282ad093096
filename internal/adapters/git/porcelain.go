package git

import (
	"bufio"
	"strings"

	"go.trai.ch/twin/internal/core/domain"
)

const branchRefPrefix = "refs/heads/"

// parseWorktreeList parses `git worktree list --porcelain`. The first record
// is the primary working copy; bare records have no checkout and are dropped.
func parseWorktreeList(out string) []domain.WorkingCopy {
	var (
		copies  []domain.WorkingCopy
		current *domain.WorkingCopy
		bare    bool
		first   = true
	)

	flush := func() {
		if current != nil && !bare {
			current.Primary = first
			copies = append(copies, *current)
		}
		if current != nil {
			first = false
		}
		current, bare = nil, false
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			flush()
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &domain.WorkingCopy{Path: value}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, branchRefPrefix)
			}
		case "bare":
			bare = true
		}
	}
	flush()

	return copies
}
