package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/twin/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/twin/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/twin/internal/adapters/git"    //nolint:depguard // Wired in app layer
	"go.trai.ch/twin/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/twin/internal/engine/copier"
	"go.trai.ch/twin/internal/engine/detection"
	"go.trai.ch/twin/internal/engine/selection"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			git.NodeID,
			config.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			logger.NodeID,
			detection.NodeID,
			copier.NodeID,
			selection.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	vcs, err := graft.Dep[ports.VersionControl](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.CacheVerifier](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	det, err := graft.Dep[*detection.Detector](ctx)
	if err != nil {
		return nil, err
	}

	cop, err := graft.Dep[*copier.Copier](ctx)
	if err != nil {
		return nil, err
	}

	sel, err := graft.Dep[*selection.Selector](ctx)
	if err != nil {
		return nil, err
	}

	return New(vcs, loader, hasher, verifier, log, det, cop, sel), nil
}
