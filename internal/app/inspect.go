package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/zerr"
)

const globMeta = "*?[{\\"

// DetectOptions configures Detect.
type DetectOptions struct {
	Options
	// Path is the project root. Defaults to the process directory.
	Path string
}

// Detect reports the cache configuration of a project root.
func (a *App) Detect(ctx context.Context, opts DetectOptions) (err error) {
	s := a.begin(opts.Options)
	defer func() { err = s.end(ctx, err) }()

	root, err := resolveRoot(opts.Path)
	if err != nil {
		return err
	}

	res, err := a.detector.Detect(ctx, root)
	if err != nil {
		return err
	}
	s.renderer.OnDetect(root, res)

	a.warnUnignored(ctx, root, res.Patterns())
	return nil
}

// warnUnignored flags literal cache targets git would track. Hard links in
// tracked paths end up in commits.
func (a *App) warnUnignored(ctx context.Context, root string, patterns []string) {
	for _, p := range patterns {
		if strings.ContainsAny(p, globMeta) {
			continue
		}
		ignored, err := a.vcs.IsIgnored(ctx, root, p)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("cannot check whether %s is ignored: %v", p, err))
			continue
		}
		if !ignored {
			a.logger.Warn(fmt.Sprintf("cache target %s is not ignored by git", p))
		}
	}
}

// List reports every working copy with its cache state.
func (a *App) List(ctx context.Context, opts Options) (err error) {
	s := a.begin(opts)
	defer func() { err = s.end(ctx, err) }()

	copies, err := a.vcs.List(ctx)
	if err != nil {
		return err
	}
	current, err := a.vcs.Current(ctx)
	if err != nil {
		return err
	}

	rows := make([]domain.WorkingCopyStatus, 0, len(copies))
	reference := ""
	for _, wc := range copies {
		row := a.status(ctx, wc)
		row.Current = wc.Path == current.Path
		if row.Current {
			reference = row.Fingerprint
		}
		rows = append(rows, row)
	}

	for i := range rows {
		fp := rows[i].Fingerprint
		rows[i].Drift = !rows[i].Current && fp != "" && reference != "" && fp != reference
	}

	s.renderer.OnList(rows)
	return nil
}

func (a *App) status(ctx context.Context, wc domain.WorkingCopy) domain.WorkingCopyStatus {
	row := domain.WorkingCopyStatus{WorkingCopy: wc}

	res, err := a.detector.Detect(ctx, wc.Path)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("cannot detect caches in %s: %v", wc.Path, err))
		return row
	}

	if res.Found() {
		populated, err := a.verifier.Populated(wc.Path, res.Patterns())
		if err != nil {
			a.logger.Warn(fmt.Sprintf("cannot inspect caches in %s: %v", wc.Path, err))
		}
		row.Populated = populated
	}

	if files := manifests(res); len(files) > 0 {
		fp, err := a.hasher.Fingerprint(wc.Path, files)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("cannot fingerprint %s: %v", wc.Path, err))
		}
		row.Fingerprint = fp
	}
	return row
}

func resolveRoot(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get current working directory")
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path)
	}
	return abs, nil
}
