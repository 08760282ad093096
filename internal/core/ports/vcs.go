package ports

import (
	"context"

	"go.trai.ch/twin/internal/core/domain"
)

// VersionControl defines the working copy operations of the repository.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VersionControl interface {
	// List returns every working copy, the primary one first.
	List(ctx context.Context) ([]domain.WorkingCopy, error)
	// Current returns the working copy containing the process directory.
	Current(ctx context.Context) (domain.WorkingCopy, error)
	// Create checks out ref into a new working copy at path.
	Create(ctx context.Context, ref, path string, opts domain.CreateOptions) error
	// Remove deletes the working copy at path.
	Remove(ctx context.Context, path string, force bool) error
	// IsIgnored reports whether rel, relative to root, is ignored.
	IsIgnored(ctx context.Context, root, rel string) (bool, error)
}
