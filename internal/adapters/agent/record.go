package agent

import (
	"go.trai.ch/twin/internal/core/domain"
)

// Record is the document written for one command.
type Record struct {
	Detection     *Detection   `json:"detection,omitempty"`
	Source        *Source      `json:"source,omitempty"`
	Created       *WorkingCopy `json:"created,omitempty"`
	Copy          *Copy        `json:"copy,omitempty"`
	Reconcile     *Reconcile   `json:"reconcile,omitempty"`
	WorkingCopies []Status     `json:"working_copies,omitempty"`
	Removed       *WorkingCopy `json:"removed,omitempty"`
	Recipes       []Recipe     `json:"recipes,omitempty"`
	Init          *Init        `json:"init,omitempty"`
}

// Detection mirrors domain.DetectionResult.
type Detection struct {
	Root     string   `json:"root"`
	Method   string   `json:"method"`
	Recipe   string   `json:"recipe,omitempty"`
	Recipes  []string `json:"recipes,omitempty"`
	Markers  []string `json:"markers,omitempty"`
	Patterns []string `json:"cache_patterns"`
	Command  string   `json:"reconciliation_command,omitempty"`
}

// WorkingCopy mirrors domain.WorkingCopy.
type WorkingCopy struct {
	Path    string `json:"path"`
	Branch  string `json:"branch,omitempty"`
	Primary bool   `json:"primary"`
}

// Source is the chosen source working copy.
type Source struct {
	WorkingCopy
	Warning string `json:"warning,omitempty"`
}

// Copy mirrors domain.CopyResult.
type Copy struct {
	Patterns  []string  `json:"patterns"`
	Attempted []string  `json:"attempted"`
	Copied    []string  `json:"copied"`
	Failed    []Failure `json:"failed"`
}

// Failure is one item that could not be copied.
type Failure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Reconcile describes the reconciliation command that was run.
type Reconcile struct {
	Dir     string `json:"dir"`
	Command string `json:"command"`
}

// Status mirrors domain.WorkingCopyStatus.
type Status struct {
	WorkingCopy
	Current     bool   `json:"current"`
	Populated   bool   `json:"populated"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Drift       bool   `json:"drift"`
}

// Recipe is one entry of the built-in registry.
type Recipe struct {
	Name     string   `json:"name"`
	Markers  []string `json:"markers"`
	Patterns []string `json:"cache_patterns"`
	Command  string   `json:"reconciliation_command,omitempty"`
}

// Init describes a written override file.
type Init struct {
	Path     string   `json:"path"`
	Extends  string   `json:"extends,omitempty"`
	Patterns []string `json:"cache_patterns"`
	Command  string   `json:"reconciliation_command,omitempty"`
}

func newDetection(root string, res domain.DetectionResult) *Detection {
	d := &Detection{
		Root:     root,
		Method:   string(res.Method),
		Recipes:  res.Recipes,
		Markers:  res.Markers,
		Patterns: nonNil(res.Patterns()),
	}
	if res.Config != nil {
		d.Recipe = res.Config.Recipe
		d.Command = res.Config.Command
	}
	return d
}

func newWorkingCopy(wc domain.WorkingCopy) WorkingCopy {
	return WorkingCopy{Path: wc.Path, Branch: wc.Branch, Primary: wc.Primary}
}

func newCopy(res domain.CopyResult) *Copy {
	c := &Copy{
		Patterns:  nonNil(res.Patterns),
		Attempted: nonNil(res.Attempted),
		Copied:    nonNil(res.Copied),
		Failed:    make([]Failure, 0, len(res.Failed)),
	}
	for _, f := range res.Failed {
		c.Failed = append(c.Failed, Failure{Path: f.Path, Message: f.Err.Error()})
	}
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
