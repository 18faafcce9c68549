package natsrpc

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/retry"
)

// NodeID is the unique identifier for the worker transport Graft node.
const NodeID graft.ID = "adapter.worker_transport"

func init() {
	graft.Register(graft.Node[ports.WorkerTransport]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (ports.WorkerTransport, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load(cwd)
			if err != nil {
				return nil, err
			}

			policy := retry.NewPolicy(retry.BackoffMode(cfg.RetryMode), cfg.RetryInitial, cfg.RetryMax, cfg.RetryMaxRetries)
			return NewClient(cfg.NATSURL, cfg.CallTimeout, policy, log)
		},
	})
}
