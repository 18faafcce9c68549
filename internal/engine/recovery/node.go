package recovery

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/state"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the recovery pipeline Graft node.
const NodeID graft.ID = "engine.recovery"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, state.NodeID},
		Run: func(ctx context.Context) (*Pipeline, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}

			p := NewPipeline(log)
			for _, a := range []Action{
				NewPlanCacheAction(store),
				NewJournalCursorAction(store),
				NewTempDirsAction(store, domain.DefaultTmpPath()),
			} {
				if err := p.Register(a); err != nil {
					return nil, err
				}
			}
			return p, nil
		},
	})
}
