package ports

import "go.trai.ch/forge/internal/core/domain"

// ConfigLoader loads the engine configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers and parses forge.yaml starting from cwd.
	Load(cwd string) (*domain.EngineConfig, error)
}
