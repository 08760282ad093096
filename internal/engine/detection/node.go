package detection

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/twin/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/twin/internal/core/ports"
)

// NodeID is the unique identifier for the detector Graft node.
const NodeID graft.ID = "engine.detection"

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Detector, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewDetector(loader, tracer), nil
		},
	})
}
