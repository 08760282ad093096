// Package agent provides the structured renderer: every event of a command
// is collected into one JSON document written to stdout on Flush.
package agent

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer for machine consumers.
type Renderer struct {
	w io.Writer

	mu     sync.Mutex
	record Record
	dirty  bool
}

// NewRenderer creates a new Renderer writing to w, or stdout if w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{w: w}
}

// OnDetect records the detection result.
func (r *Renderer) OnDetect(root string, res domain.DetectionResult) {
	r.update(func(rec *Record) {
		rec.Detection = newDetection(root, res)
	})
}

// OnSource records the chosen source.
func (r *Renderer) OnSource(sel domain.SourceSelection) {
	r.update(func(rec *Record) {
		rec.Source = &Source{WorkingCopy: newWorkingCopy(sel.Chosen), Warning: sel.Warning}
	})
}

// OnCreated records the new working copy.
func (r *Renderer) OnCreated(wc domain.WorkingCopy) {
	r.update(func(rec *Record) {
		created := newWorkingCopy(wc)
		rec.Created = &created
	})
}

// OnProgress is ignored; the copy summary carries the outcome.
func (r *Renderer) OnProgress(_, _ int, _ string) {}

// OnCopy records the copy result.
func (r *Renderer) OnCopy(res domain.CopyResult) {
	r.update(func(rec *Record) {
		rec.Copy = newCopy(res)
	})
}

// OnReconcile records the reconciliation command.
func (r *Renderer) OnReconcile(dir, command string) {
	r.update(func(rec *Record) {
		rec.Reconcile = &Reconcile{Dir: dir, Command: command}
	})
}

// OnList records the working copies.
func (r *Renderer) OnList(rows []domain.WorkingCopyStatus) {
	r.update(func(rec *Record) {
		rec.WorkingCopies = make([]Status, 0, len(rows))
		for _, row := range rows {
			rec.WorkingCopies = append(rec.WorkingCopies, Status{
				WorkingCopy: newWorkingCopy(row.WorkingCopy),
				Current:     row.Current,
				Populated:   row.Populated,
				Fingerprint: row.Fingerprint,
				Drift:       row.Drift,
			})
		}
	})
}

// OnRemoved records the removed working copy.
func (r *Renderer) OnRemoved(wc domain.WorkingCopy) {
	r.update(func(rec *Record) {
		removed := newWorkingCopy(wc)
		rec.Removed = &removed
	})
}

// OnRecipes records the registry.
func (r *Renderer) OnRecipes(recipes []domain.StackSignature) {
	r.update(func(rec *Record) {
		rec.Recipes = make([]Recipe, 0, len(recipes))
		for _, s := range recipes {
			rec.Recipes = append(rec.Recipes, Recipe{
				Name:     s.Name,
				Markers:  s.Markers,
				Patterns: s.Config.Patterns,
				Command:  s.Config.Command,
			})
		}
	})
}

// OnInit records the written override file.
func (r *Renderer) OnInit(path string, cfg domain.CacheConfig) {
	r.update(func(rec *Record) {
		rec.Init = &Init{Path: path, Extends: cfg.Recipe, Patterns: cfg.Patterns, Command: cfg.Command}
	})
}

// Flush writes the collected record as one JSON line. Nothing is written
// when no event was recorded.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		return nil
	}
	if err := json.NewEncoder(r.w).Encode(r.record); err != nil {
		return zerr.Wrap(err, "failed to write result")
	}
	r.record, r.dirty = Record{}, false
	return nil
}

func (r *Renderer) update(fn func(*Record)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.record)
	r.dirty = true
}
