package app

import (
	"go.trai.ch/forge/internal/core/ports"
)

// Components contains all the initialized application components. It gives
// the CLI layer controlled access to what it needs. The worker transport is
// not part of it: connecting is deferred to the worker command, so master
// commands never pay for a transport they do not use.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}
