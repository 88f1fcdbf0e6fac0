package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packsweep/internal/adapters/logger"
	"go.trai.ch/packsweep/internal/core/ports"
)

// NodeID is the unique identifier for the pack table loader Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.TableLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TableLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
