package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/journal"   //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/coordinator"
	"go.trai.ch/forge/internal/engine/recovery"
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
			config.NodeID,
			logger.NodeID,
			state.NodeID,
			fs.NodeID,
			journal.NodeID,
			coordinator.NodeID,
			recovery.NodeID,
			telemetry.NodeID,
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
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}
	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}
	changeJournal, err := graft.Dep[ports.ChangeJournal](ctx)
	if err != nil {
		return nil, err
	}
	coord, err := graft.Dep[*coordinator.Coordinator](ctx)
	if err != nil {
		return nil, err
	}
	pipeline, err := graft.Dep[*recovery.Pipeline](ctx)
	if err != nil {
		return nil, err
	}
	// Resolving the telemetry node installs the global tracer provider, so
	// every otel.Tracer handle in the engine records real spans.
	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, store, fingerprinter, changeJournal, coord, pipeline).WithTelemetry(provider), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          application,
		Logger:       log,
		ConfigLoader: loader,
	}, nil
}
