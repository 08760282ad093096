package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/twin/internal/adapters/config"
	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/zerr"
)

// RemoveOptions configures Remove.
type RemoveOptions struct {
	Options
	// Target names the working copy by path or branch.
	Target string
	// Force removes a working copy with local changes.
	Force bool
}

// Remove deletes a working copy.
func (a *App) Remove(ctx context.Context, opts RemoveOptions) (err error) {
	s := a.begin(opts.Options)
	defer func() { err = s.end(ctx, err) }()

	copies, err := a.vcs.List(ctx)
	if err != nil {
		return err
	}

	wc, err := findWorkingCopy(copies, opts.Target)
	if err != nil {
		return err
	}
	if wc.Primary {
		return domain.Fail(domain.ErrInvalidArguments,
			zerr.With(zerr.New("the primary working copy cannot be removed"), "path", wc.Path))
	}

	if err := a.vcs.Remove(ctx, wc.Path, opts.Force); err != nil {
		return zerr.With(err, "path", wc.Path)
	}
	s.renderer.OnRemoved(wc)
	return nil
}

// InitOptions configures Init.
type InitOptions struct {
	Options
	// Path is the project root. Defaults to the process directory.
	Path string
	// Recipe seeds the file with a built-in recipe. Empty seeds it from
	// detection.
	Recipe string
	// Force overwrites an existing file.
	Force bool
}

// Init writes an override file for a project root.
func (a *App) Init(ctx context.Context, opts InitOptions) (err error) {
	s := a.begin(opts.Options)
	defer func() { err = s.end(ctx, err) }()

	root, err := resolveRoot(opts.Path)
	if err != nil {
		return err
	}
	path := filepath.Join(root, domain.OverrideFileName)

	taken, err := exists(path)
	if err != nil {
		return err
	}
	if taken && !opts.Force {
		return domain.Fail(domain.ErrInvalidArguments,
			zerr.With(zerr.New("override file already exists, use --force to replace it"), "path", path))
	}

	file, err := a.seed(ctx, root, opts.Recipe, taken)
	if err != nil {
		return err
	}

	data, err := config.Encode(file)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil { //nolint:gosec // Override file is meant to be readable
		return zerr.With(zerr.Wrap(err, "failed to write override file"), "path", path)
	}

	cfg, err := a.loader.Load(path)
	if err != nil {
		return err
	}
	s.renderer.OnInit(path, cfg)
	return nil
}

// seed builds the initial file content. With replace set the existing file
// is ignored, so detection falls back to the weaker tiers.
func (a *App) seed(ctx context.Context, root, recipe string, replace bool) (config.OverrideFile, error) {
	if recipe != "" {
		if _, ok := domain.LookupRecipe(recipe); !ok {
			return config.OverrideFile{}, domain.Fail(domain.ErrUnknownSignature,
				zerr.With(zerr.New("no built-in recipe named "+recipe), "recipe", recipe))
		}
		return config.OverrideFile{Extends: recipe}, nil
	}

	detect := a.detector.Detect
	if replace {
		detect = a.detector.DetectImplicit
	}
	res, err := detect(ctx, root)
	if err != nil {
		return config.OverrideFile{}, err
	}

	switch res.Method {
	case domain.MethodSingle:
		return config.OverrideFile{Extends: res.Config.Recipe}, nil
	case domain.MethodMerged, domain.MethodGitignore:
		return config.OverrideFile{Cache: res.Patterns()}, nil
	default:
		return config.OverrideFile{Cache: []string{}}, nil
	}
}

// Recipes lists the built-in registry.
func (a *App) Recipes(ctx context.Context, opts Options) (err error) {
	s := a.begin(opts)
	defer func() { err = s.end(ctx, err) }()

	s.renderer.OnRecipes(domain.Recipes())
	return nil
}
