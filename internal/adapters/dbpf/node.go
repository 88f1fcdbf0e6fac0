package dbpf

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/packsweep/internal/core/ports"
)

// NodeID is the unique identifier for the archive codec Graft node.
const NodeID graft.ID = "adapter.dbpf"

func init() {
	graft.Register(graft.Node[ports.ArchiveCodec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArchiveCodec, error) {
			return NewCodec(), nil
		},
	})
}
