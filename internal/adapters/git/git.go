// Package git implements ports.VersionControl with the git command line.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionControl = (*Git)(nil)

// Git runs git in dir, which may be any directory inside the repository.
type Git struct {
	dir string
}

// New creates a Git adapter rooted at dir.
func New(dir string) *Git {
	return &Git{dir: dir}
}

// List returns every working copy of the repository, primary first.
func (g *Git) List(ctx context.Context) ([]domain.WorkingCopy, error) {
	out, err := g.run(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktreeList(out), nil
}

// Current returns the working copy containing dir.
func (g *Git) Current(ctx context.Context) (domain.WorkingCopy, error) {
	out, err := g.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return domain.WorkingCopy{}, err
	}
	top := strings.TrimSpace(out)

	copies, err := g.List(ctx)
	if err != nil {
		return domain.WorkingCopy{}, err
	}
	for _, wc := range copies {
		if samePath(wc.Path, top) {
			return wc, nil
		}
	}
	return domain.WorkingCopy{Path: top}, nil
}

// Create adds a working copy for ref at path.
func (g *Git) Create(ctx context.Context, ref, path string, opts domain.CreateOptions) error {
	args := []string{"worktree", "add"}
	if opts.NewBranch {
		args = append(args, "-b", ref, path)
		if opts.Base != "" {
			args = append(args, opts.Base)
		}
	} else {
		args = append(args, path, ref)
	}

	_, err := g.run(ctx, args...)
	return err
}

// Remove deletes the working copy at path.
func (g *Git) Remove(ctx context.Context, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	_, err := g.run(ctx, args...)
	return err
}

// IsIgnored reports whether rel (slash-separated, relative to root) is
// excluded by the repository's ignore files.
func (g *Git) IsIgnored(_ context.Context, root, rel string) (bool, error) {
	return matchIgnored(root, rel)
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		cause := zerr.With(zerr.Wrap(err, "git "+args[0]+" failed"), "stderr", msg)
		return "", domain.Fail(classify(err, msg), zerr.With(cause, "args", strings.Join(args, " ")))
	}
	return stdout.String(), nil
}

// classify maps git's diagnostics onto failure kinds.
func classify(err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return domain.ErrVersionControl
	}

	switch {
	case strings.Contains(stderr, "already exists"),
		strings.Contains(stderr, "is already checked out"),
		strings.Contains(stderr, "is already used by worktree"):
		return domain.ErrWorkingCopyExists
	case strings.Contains(stderr, "is not a working tree"):
		return domain.ErrWorkingCopyNotFound
	case strings.Contains(stderr, "invalid reference"),
		strings.Contains(stderr, "not a valid branch name"):
		return domain.ErrInvalidArguments
	}
	return domain.ErrVersionControl
}

func samePath(a, b string) bool {
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
