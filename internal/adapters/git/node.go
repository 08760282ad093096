package git

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the git Graft node.
const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.VersionControl]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionControl, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to get current working directory")
			}
			return New(cwd), nil
		},
	})
}
