// Package copier materializes cache artifacts of one working copy inside another.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Copier expands cache patterns, links the matches into a destination and
// runs the reconciliation command once every item has been resolved.
type Copier struct {
	resolver ports.PatternResolver
	linker   ports.Linker
	executor ports.Executor
	logger   ports.Logger
	tracer   ports.Tracer

	probeOnce sync.Once
	reflinkOK bool
}

// NewCopier creates a new Copier.
func NewCopier(
	resolver ports.PatternResolver,
	linker ports.Linker,
	executor ports.Executor,
	logger ports.Logger,
	tracer ports.Tracer,
) *Copier {
	return &Copier{
		resolver: resolver,
		linker:   linker,
		executor: executor,
		logger:   logger,
		tracer:   tracer,
	}
}

// Plan expands patterns against root and removes nested matches. Patterns
// that cannot be expanded are reported as warnings and contribute nothing.
func (c *Copier) Plan(root string, patterns []string) []string {
	var matches []string
	for _, pattern := range patterns {
		found, err := c.resolver.Expand(root, pattern)
		if err != nil {
			c.logger.Warn(fmt.Sprintf("skipping cache pattern %q: %v", pattern, err))
			continue
		}
		matches = append(matches, found...)
	}
	return Dedupe(matches)
}

// CopyArtifacts links every planned path from src into dst. Items run
// concurrently up to opts.Jobs; progress is reported in plan order. A failed
// item is logged and recorded but never aborts the batch, and an existing
// destination entry is left untouched.
func (c *Copier) CopyArtifacts(
	ctx context.Context,
	src, dst string,
	patterns []string,
	opts domain.CopyOptions,
) (domain.CopyResult, error) {
	ctx, span := c.tracer.Start(ctx, "copy",
		ports.WithAttribute("source", src),
		ports.WithAttribute("destination", dst),
	)
	defer span.End()

	plan := c.Plan(src, patterns)
	c.tracer.EmitPlan(ctx, plan)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = domain.DefaultJobs
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(int, int, string) {}
	}

	copied := make([]bool, len(plan))
	failures := make([]error, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, rel := range plan {
		if ctx.Err() != nil {
			break
		}
		progress(i, len(plan), rel)

		g.Go(func() error {
			ok, err := c.copyItem(gctx, src, dst, rel, opts.Reflink)
			if err != nil {
				failures[i] = err
				c.logger.Warn(fmt.Sprintf("failed to copy %s: %v", rel, err))
				return nil
			}
			copied[i] = ok
			return nil
		})
	}

	// Every item is resolved past this point.
	_ = g.Wait()
	progress(len(plan), len(plan), "")

	res := domain.CopyResult{
		Patterns:  patterns,
		Attempted: plan,
		Copied:    []string{},
	}
	for i, rel := range plan {
		switch {
		case failures[i] != nil:
			res.Failed = append(res.Failed, domain.CopyFailure{Path: rel, Err: failures[i]})
		case copied[i]:
			res.Copied = append(res.Copied, rel)
		}
	}

	span.SetAttribute("copied", len(res.Copied))
	span.SetAttribute("failed", len(res.Failed))

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return res, zerr.Wrap(err, "copy interrupted")
	}
	return res, nil
}

// copyItem reports false without error when the item was skipped.
func (c *Copier) copyItem(ctx context.Context, src, dst, rel string, reflink bool) (bool, error) {
	if ctx.Err() != nil {
		return false, nil
	}

	_, span := c.tracer.Start(ctx, rel)
	defer span.End()

	from := filepath.Join(src, rel)
	to := filepath.Join(dst, rel)

	if _, err := os.Lstat(from); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			span.SetAttribute("skipped", "source missing")
			return false, nil
		}
		return false, c.fail(span, rel, err)
	}
	if _, err := os.Lstat(to); err == nil {
		span.SetAttribute("skipped", "destination exists")
		return false, nil
	}

	if reflink && c.reflinkSupported(dst) {
		err := c.linker.Reflink(from, to)
		switch {
		case err == nil:
			span.SetAttribute("strategy", "reflink")
			return true, nil
		case errors.Is(err, iofs.ErrExist):
			span.SetAttribute("skipped", "destination exists")
			return false, nil
		}
	}

	if err := c.linker.Hardlink(from, to); err != nil {
		if errors.Is(err, iofs.ErrExist) {
			span.SetAttribute("skipped", "destination exists")
			return false, nil
		}
		return false, c.fail(span, rel, err)
	}
	span.SetAttribute("strategy", "hardlink")
	return true, nil
}

func (c *Copier) fail(span ports.Span, rel string, err error) error {
	span.RecordError(err)
	return domain.Fail(domain.ErrCopyFailed, zerr.With(err, "path", rel))
}

// reflinkSupported probes the destination filesystem on first use.
func (c *Copier) reflinkSupported(dir string) bool {
	c.probeOnce.Do(func() {
		c.reflinkOK = c.linker.ProbeReflink(dir)
		if !c.reflinkOK {
			c.logger.Warn("copy-on-write clones unavailable, falling back to hard links")
		}
	})
	return c.reflinkOK
}

// Reconcile runs command inside dir. A non-zero exit is fatal.
func (c *Copier) Reconcile(ctx context.Context, dir, command string, stdout, stderr io.Writer) error {
	if command == "" {
		return nil
	}

	ctx, span := c.tracer.Start(ctx, "reconcile", ports.WithAttribute("command", command))
	defer span.End()

	if err := c.executor.Run(ctx, dir, command, stdout, stderr); err != nil {
		span.RecordError(err)
		return domain.Fail(domain.ErrReconcileFailed, zerr.With(err, "dir", dir))
	}
	return nil
}

// Restore copies the artifacts named by cfg and then reconciles. The command
// starts only after every copy item has been resolved.
func (c *Copier) Restore(
	ctx context.Context,
	src, dst string,
	cfg domain.CacheConfig,
	opts domain.CopyOptions,
	stdout, stderr io.Writer,
) (domain.CopyResult, error) {
	res, err := c.CopyArtifacts(ctx, src, dst, cfg.Patterns, opts)
	if opts.OnCopy != nil {
		opts.OnCopy(res)
	}
	if err != nil || !cfg.HasCommand() {
		return res, err
	}

	if opts.OnReconcile != nil {
		opts.OnReconcile(dst, cfg.Command)
	}
	return res, c.Reconcile(ctx, dst, cfg.Command, stdout, stderr)
}
