package ports

import "go.trai.ch/twin/internal/core/domain"

// Renderer is the abstraction for presenting command results.
// Human renderers print as events arrive; structured renderers collect them
// into a single record written on Flush.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnDetect is called with the detection result for root.
	OnDetect(root string, res domain.DetectionResult)

	// OnSource is called once a source working copy has been chosen.
	OnSource(sel domain.SourceSelection)

	// OnCreated is called after a working copy has been created.
	OnCreated(wc domain.WorkingCopy)

	// OnProgress is called before each copy item and once on completion.
	OnProgress(index, total int, path string)

	// OnCopy is called with the result of a copy.
	OnCopy(res domain.CopyResult)

	// OnReconcile is called before the reconciliation command starts.
	OnReconcile(dir, command string)

	// OnList is called with the status of every working copy.
	OnList(rows []domain.WorkingCopyStatus)

	// OnRemoved is called after a working copy has been removed.
	OnRemoved(wc domain.WorkingCopy)

	// OnRecipes is called with the built-in registry.
	OnRecipes(recipes []domain.StackSignature)

	// OnInit is called after an override file has been written.
	OnInit(path string, cfg domain.CacheConfig)

	// Flush writes any buffered output.
	Flush() error
}
