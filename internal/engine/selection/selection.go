// Package selection picks the working copy whose caches seed another one.
package selection

import (
	"context"
	"fmt"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Detector resolves the cache configuration of a working copy.
type Detector interface {
	Detect(ctx context.Context, root string) (domain.DetectionResult, error)
}

// Selector ranks working copies by branch and cache state.
type Selector struct {
	detector Detector
	verifier ports.CacheVerifier
	logger   ports.Logger
	tracer   ports.Tracer
}

// NewSelector creates a new Selector.
func NewSelector(detector Detector, verifier ports.CacheVerifier, logger ports.Logger, tracer ports.Tracer) *Selector {
	return &Selector{
		detector: detector,
		verifier: verifier,
		logger:   logger,
		tracer:   tracer,
	}
}

// Select returns the best source among copies, never the working copy at
// target. The first rule that applies wins:
//
//  1. the primary branch with a populated cache
//  2. the legacy primary branch with a populated cache
//  3. any copy with a populated cache, in listing order
//  4. the current working copy
//  5. the first listed copy
//
// Rules 3 to 5 are guesses and set Warning.
func (s *Selector) Select(
	ctx context.Context,
	copies []domain.WorkingCopy,
	current domain.WorkingCopy,
	target string,
) (domain.SourceSelection, error) {
	ctx, span := s.tracer.Start(ctx, "select source", ports.WithAttribute("target", target))
	defer span.End()

	candidates := make([]domain.WorkingCopy, 0, len(copies))
	for _, wc := range copies {
		if wc.Path != target {
			candidates = append(candidates, wc)
		}
	}
	if len(candidates) == 0 {
		err := domain.Fail(domain.ErrWorkingCopyNotFound, zerr.With(zerr.New("no other working copy to copy from"), "target", target))
		span.RecordError(err)
		return domain.SourceSelection{}, err
	}

	populated := s.memo(ctx)

	sel := s.rank(candidates, current, populated)
	span.SetAttribute("source", sel.Chosen.Path)
	if sel.Warning != "" {
		span.SetAttribute("warning", sel.Warning)
	}
	return sel, nil
}

func (s *Selector) rank(
	candidates []domain.WorkingCopy,
	current domain.WorkingCopy,
	populated func(domain.WorkingCopy) bool,
) domain.SourceSelection {
	for _, branch := range []string{domain.PrimaryBranch, domain.LegacyPrimaryBranch} {
		for _, wc := range candidates {
			if wc.Branch == branch && populated(wc) {
				return domain.SourceSelection{Chosen: wc}
			}
		}
	}

	for _, wc := range candidates {
		if populated(wc) {
			return domain.SourceSelection{
				Chosen:  wc,
				Warning: fmt.Sprintf("no populated cache on %s or %s, using %s", domain.PrimaryBranch, domain.LegacyPrimaryBranch, describe(wc)),
			}
		}
	}

	for _, wc := range candidates {
		if wc.Path == current.Path {
			return domain.SourceSelection{
				Chosen:  wc,
				Warning: "no populated cache found, using the current working copy " + describe(wc),
			}
		}
	}

	return domain.SourceSelection{
		Chosen:  candidates[0],
		Warning: "no populated cache found, using " + describe(candidates[0]),
	}
}

// memo checks each working copy at most once per selection. Detection
// errors count as an empty cache.
func (s *Selector) memo(ctx context.Context) func(domain.WorkingCopy) bool {
	seen := make(map[string]bool)

	return func(wc domain.WorkingCopy) bool {
		if ok, done := seen[wc.Path]; done {
			return ok
		}
		ok := s.populated(ctx, wc)
		seen[wc.Path] = ok
		return ok
	}
}

func (s *Selector) populated(ctx context.Context, wc domain.WorkingCopy) bool {
	res, err := s.detector.Detect(ctx, wc.Path)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("cannot detect caches in %s: %v", wc.Path, err))
		return false
	}
	if !res.Found() {
		return false
	}

	ok, err := s.verifier.Populated(wc.Path, res.Patterns())
	if err != nil {
		s.logger.Warn(fmt.Sprintf("cannot inspect caches in %s: %v", wc.Path, err))
		return false
	}
	return ok
}

func describe(wc domain.WorkingCopy) string {
	if wc.Branch == "" {
		return wc.Path + " (detached)"
	}
	return wc.Branch + " (" + wc.Path + ")"
}
