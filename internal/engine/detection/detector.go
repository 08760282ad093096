// Package detection decides which paths of a project are cache artifacts.
package detection

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Detector resolves the cache configuration of a project root. The first
// tier that yields a configuration wins: the override file, then recipe
// markers, then the ignore file.
type Detector struct {
	loader ports.ConfigLoader
	tracer ports.Tracer
}

// NewDetector creates a new Detector.
func NewDetector(loader ports.ConfigLoader, tracer ports.Tracer) *Detector {
	return &Detector{
		loader: loader,
		tracer: tracer,
	}
}

// Detect inspects the top-level entries of root. A broken override file is
// returned as an error and never falls through to the weaker tiers.
func (d *Detector) Detect(ctx context.Context, root string) (domain.DetectionResult, error) {
	return d.run(ctx, root, true)
}

// DetectImplicit runs every tier except the override file.
func (d *Detector) DetectImplicit(ctx context.Context, root string) (domain.DetectionResult, error) {
	return d.run(ctx, root, false)
}

func (d *Detector) run(ctx context.Context, root string, explicit bool) (domain.DetectionResult, error) {
	_, span := d.tracer.Start(ctx, "detect", ports.WithAttribute("root", root))
	defer span.End()

	res, err := d.detect(root, explicit)
	if err != nil {
		span.RecordError(err)
		return domain.DetectionResult{}, err
	}

	span.SetAttribute("method", string(res.Method))
	span.SetAttribute("patterns", res.Patterns())
	return res, nil
}

func (d *Detector) detect(root string, explicit bool) (domain.DetectionResult, error) {
	entries, err := readEntries(root)
	if err != nil {
		return domain.DetectionResult{}, err
	}

	if _, ok := entries[domain.OverrideFileName]; ok && explicit {
		cfg, err := d.loader.Load(filepath.Join(root, domain.OverrideFileName))
		if err != nil {
			return domain.DetectionResult{}, err
		}
		res := domain.DetectionResult{Method: domain.MethodExplicit, Config: &cfg}
		if cfg.Recipe != "" {
			res.Recipes = []string{cfg.Recipe}
		}
		return res, nil
	}

	if res, ok := matchRecipes(entries); ok {
		return res, nil
	}

	if _, ok := entries[domain.GitignoreFileName]; ok {
		content, err := os.ReadFile(filepath.Join(root, domain.GitignoreFileName)) //nolint:gosec // Fixed file name under the project root
		if err != nil {
			return domain.DetectionResult{}, zerr.With(zerr.Wrap(err, "failed to read ignore file"), "path", root)
		}
		if cfg, ok := Infer(string(content)); ok {
			return domain.DetectionResult{Method: domain.MethodGitignore, Config: &cfg}, nil
		}
	}

	return domain.DetectionResult{Method: domain.MethodNone}, nil
}

// matchRecipes applies the registry. Several matches merge their patterns
// and drop every reconciliation command.
func matchRecipes(entries map[string]struct{}) (domain.DetectionResult, bool) {
	matched := domain.LookupAll(entries)
	if len(matched) == 0 {
		return domain.DetectionResult{}, false
	}

	names := make([]string, 0, len(matched))
	var markers []string
	lists := make([][]string, 0, len(matched))
	for _, sig := range matched {
		names = append(names, sig.Name)
		markers = append(markers, sig.MatchedMarkers(entries)...)
		lists = append(lists, sig.Config.Patterns)
	}

	if len(matched) == 1 {
		cfg := matched[0].Config.Clone()
		return domain.DetectionResult{
			Method:  domain.MethodSingle,
			Config:  &cfg,
			Recipes: names,
			Markers: markers,
		}, true
	}

	cfg := domain.CacheConfig{
		Patterns: domain.UnionPatterns(lists...),
		Recipe:   matched[0].Name,
	}
	return domain.DetectionResult{
		Method:  domain.MethodMerged,
		Config:  &cfg,
		Recipes: names,
		Markers: markers,
	}, true
}

func readEntries(root string) (map[string]struct{}, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, domain.Fail(domain.ErrWorkingCopyNotFound, zerr.With(zerr.Wrap(err, "project root does not exist"), "path", root))
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list project root"), "path", root)
	}

	entries := make(map[string]struct{}, len(dirEntries))
	for _, e := range dirEntries {
		entries[e.Name()] = struct{}{}
	}
	return entries, nil
}
