// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/forge/internal/adapters/config"
	_ "go.trai.ch/forge/internal/adapters/fs"
	_ "go.trai.ch/forge/internal/adapters/journal"
	_ "go.trai.ch/forge/internal/adapters/logger"
	_ "go.trai.ch/forge/internal/adapters/natsrpc"
	_ "go.trai.ch/forge/internal/adapters/state"
	_ "go.trai.ch/forge/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/forge/internal/app"
	_ "go.trai.ch/forge/internal/engine/coordinator"
	_ "go.trai.ch/forge/internal/engine/guard"
	_ "go.trai.ch/forge/internal/engine/recovery"
)
