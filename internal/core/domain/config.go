package domain

import "time"

// EngineConfig is the validated engine configuration loaded from forge.yaml.
type EngineConfig struct {
	// Root is the absolute workspace root.
	Root string
	// NATSURL is the coordination transport endpoint.
	NATSURL string
	// ProjectedDirs lists externally-projected (virtualized) directory roots.
	// A change to any of them invalidates confidence in the enumerated
	// change set.
	ProjectedDirs []string
	// CallTimeout bounds each individual worker RPC.
	CallTimeout time.Duration
	// RetryMode selects the backoff shape: fixed, linear or exponential.
	RetryMode string
	// RetryInitial is the base retry delay.
	RetryInitial time.Duration
	// RetryMax caps backoff growth.
	RetryMax time.Duration
	// RetryMaxRetries is the maximum retry attempts after the first failure.
	RetryMaxRetries int
	// StopOnFirstFailure aborts the startup recovery pipeline on the first
	// failed action.
	StopOnFirstFailure bool
	// TreatDirChangesAsUnknown opts into the conservative fallback when only
	// directory-membership changes are detected.
	TreatDirChangesAsUnknown bool
}
