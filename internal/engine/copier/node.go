package copier

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/twin/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/core/ports"
)

// NodeID is the unique identifier for the copier Graft node.
const NodeID graft.ID = "engine.copier"

func init() {
	graft.Register(graft.Node[*Copier]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.LinkerNodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Copier, error) {
			resolver, err := graft.Dep[ports.PatternResolver](ctx)
			if err != nil {
				return nil, err
			}

			linker, err := graft.Dep[ports.Linker](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewCopier(resolver, linker, executor, log, tracer), nil
		},
	})
}
