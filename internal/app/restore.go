package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/zerr"
)

// AddOptions configures Add.
type AddOptions struct {
	Options
	// Branch is checked out in the new working copy.
	Branch string
	// Path is the location of the new working copy. Defaults to a sibling
	// of the primary working copy named after the branch.
	Path string
	// Base is the ref a new branch starts from.
	Base string
	// NewBranch creates Branch instead of checking it out.
	NewBranch bool
	// NoCache skips copying artifacts.
	NoCache bool
	CacheOptions
}

// RestoreOptions configures Restore.
type RestoreOptions struct {
	Options
	CacheOptions
}

// CacheOptions configures how artifacts are copied into a working copy.
type CacheOptions struct {
	// From names the source working copy by path or branch. Empty selects
	// one automatically.
	From string
	// Reflink uses copy-on-write clones where supported.
	Reflink bool
	// NoReconcile skips the reconciliation command.
	NoReconcile bool
	// Jobs bounds concurrent copies.
	Jobs int
}

// Add creates a working copy for a branch and seeds its caches.
func (a *App) Add(ctx context.Context, opts AddOptions) (err error) {
	s := a.begin(opts.Options)
	defer func() { err = s.end(ctx, err) }()

	if strings.TrimSpace(opts.Branch) == "" {
		return domain.Fail(domain.ErrInvalidArguments, zerr.New("branch name is required"))
	}

	copies, err := a.vcs.List(ctx)
	if err != nil {
		return err
	}
	current, err := a.vcs.Current(ctx)
	if err != nil {
		return err
	}

	path, err := targetPath(copies, opts.Branch, opts.Path)
	if err != nil {
		return err
	}
	taken, err := exists(path)
	if err != nil {
		return err
	}
	if taken {
		return domain.Fail(domain.ErrWorkingCopyExists,
			zerr.With(zerr.With(zerr.New("target path already exists"), "path", path), "branch", opts.Branch))
	}

	err = a.vcs.Create(ctx, opts.Branch, path, domain.CreateOptions{Base: opts.Base, NewBranch: opts.NewBranch})
	if err != nil {
		return zerr.With(zerr.With(err, "path", path), "branch", opts.Branch)
	}
	created := domain.WorkingCopy{Path: path, Branch: opts.Branch}
	s.renderer.OnCreated(created)

	if opts.NoCache {
		return nil
	}
	return a.populate(ctx, s, copies, current, created, opts.CacheOptions)
}

// Restore seeds the caches of the current working copy from another one.
func (a *App) Restore(ctx context.Context, opts RestoreOptions) (err error) {
	s := a.begin(opts.Options)
	defer func() { err = s.end(ctx, err) }()

	copies, err := a.vcs.List(ctx)
	if err != nil {
		return err
	}
	current, err := a.vcs.Current(ctx)
	if err != nil {
		return err
	}

	return a.populate(ctx, s, copies, current, current, opts.CacheOptions)
}

// populate picks a source, detects the target's configuration, copies its
// artifacts and reconciles.
func (a *App) populate(
	ctx context.Context,
	s *session,
	copies []domain.WorkingCopy,
	current, target domain.WorkingCopy,
	opts CacheOptions,
) error {
	sel, err := a.source(ctx, copies, current, target.Path, opts.From)
	if err != nil {
		return err
	}
	s.renderer.OnSource(sel)
	if sel.Warning != "" {
		a.logger.Warn(sel.Warning)
	}

	res, err := a.detector.Detect(ctx, target.Path)
	if err != nil {
		return err
	}
	s.renderer.OnDetect(target.Path, res)
	if !res.Found() {
		a.logger.Warn("no cache configuration detected, nothing to copy")
		return nil
	}

	cfg := res.Config.Clone()
	if opts.NoReconcile {
		cfg.Command = ""
	}

	stdout, stderr := s.streams(a)
	_, err = a.copier.Restore(ctx, sel.Chosen.Path, target.Path, cfg, domain.CopyOptions{
		Reflink:     opts.Reflink,
		Jobs:        opts.Jobs,
		Progress:    s.renderer.OnProgress,
		OnCopy:      s.renderer.OnCopy,
		OnReconcile: s.renderer.OnReconcile,
	}, stdout, stderr)
	if err != nil {
		return err
	}

	if !cfg.HasCommand() {
		a.warnDrift(sel.Chosen.Path, target.Path, res)
	}
	return nil
}

// source resolves --from, or ranks the working copies when it is empty.
func (a *App) source(
	ctx context.Context,
	copies []domain.WorkingCopy,
	current domain.WorkingCopy,
	target, from string,
) (domain.SourceSelection, error) {
	if from == "" {
		return a.selector.Select(ctx, copies, current, target)
	}

	wc, err := findWorkingCopy(copies, from)
	if err != nil {
		return domain.SourceSelection{}, err
	}
	if wc.Path == target {
		return domain.SourceSelection{}, domain.Fail(domain.ErrInvalidArguments,
			zerr.With(zerr.New("source and destination are the same working copy"), "path", wc.Path))
	}
	return domain.SourceSelection{Chosen: wc}, nil
}

// warnDrift warns when copied artifacts were built from different
// dependency manifests and nothing will reconcile them.
func (a *App) warnDrift(src, dst string, res domain.DetectionResult) {
	files := manifests(res)
	if len(files) == 0 {
		return
	}

	before, err := a.hasher.Fingerprint(src, files)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("cannot fingerprint %s: %v", src, err))
		return
	}
	after, err := a.hasher.Fingerprint(dst, files)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("cannot fingerprint %s: %v", dst, err))
		return
	}

	if before != after {
		a.logger.Warn(fmt.Sprintf("%s differ from the source, copied artifacts may be stale", strings.Join(files, ", ")))
	}
}

// manifests lists the marker files of every recipe behind res.
func manifests(res domain.DetectionResult) []string {
	files := slices.Clone(res.Markers)
	names := slices.Clone(res.Recipes)
	if res.Config != nil && res.Config.Recipe != "" {
		names = append(names, res.Config.Recipe)
	}
	for _, name := range names {
		if sig, ok := domain.LookupRecipe(name); ok {
			files = append(files, sig.Markers...)
		}
	}
	return domain.UnionPatterns(files)
}

// targetPath resolves the location of a new working copy.
func targetPath(copies []domain.WorkingCopy, branch, path string) (string, error) {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path)
		}
		return abs, nil
	}

	primary, err := primaryCopy(copies)
	if err != nil {
		return "", err
	}
	name := filepath.Base(primary.Path) + "-" + strings.ReplaceAll(branch, "/", "-")
	return filepath.Join(filepath.Dir(primary.Path), name), nil
}

func primaryCopy(copies []domain.WorkingCopy) (domain.WorkingCopy, error) {
	for _, wc := range copies {
		if wc.Primary {
			return wc, nil
		}
	}
	if len(copies) > 0 {
		return copies[0], nil
	}
	return domain.WorkingCopy{}, domain.Fail(domain.ErrWorkingCopyNotFound, zerr.New("repository has no working copies"))
}

// findWorkingCopy matches ref against listed paths first, then branches.
func findWorkingCopy(copies []domain.WorkingCopy, ref string) (domain.WorkingCopy, error) {
	if abs, err := filepath.Abs(ref); err == nil {
		for _, wc := range copies {
			if samePath(wc.Path, abs) {
				return wc, nil
			}
		}
	}
	for _, wc := range copies {
		if wc.Branch != "" && wc.Branch == ref {
			return wc, nil
		}
	}
	return domain.WorkingCopy{}, domain.Fail(domain.ErrWorkingCopyNotFound,
		zerr.With(zerr.New("no working copy matches"), "ref", ref))
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return ra == rb
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
}
