package journal

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the change journal Graft node.
const NodeID graft.ID = "adapter.change_journal"

func init() {
	graft.Register(graft.Node[ports.ChangeJournal]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ChangeJournal, error) {
			j, err := New()
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			// Watching starts with the process, not with the first scan:
			// events between startup and the scan must not be lost.
			if err := j.Start(ctx, cwd); err != nil {
				return nil, err
			}
			return j, nil
		},
	})
}
