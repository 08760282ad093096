package selection

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/twin/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/twin/internal/engine/detection"
)

// NodeID is the unique identifier for the selector Graft node.
const NodeID graft.ID = "engine.selection"

func init() {
	graft.Register(graft.Node[*Selector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			detection.NodeID,
			fs.VerifierNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Selector, error) {
			detector, err := graft.Dep[*detection.Detector](ctx)
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

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewSelector(detector, verifier, log, tracer), nil
		},
	})
}
