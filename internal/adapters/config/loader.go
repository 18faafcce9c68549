// Package config provides the configuration loader for forge.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/retry"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// defaultCallTimeout bounds a single worker RPC when forge.yaml does not say
// otherwise.
const defaultCallTimeout = 5 * time.Second

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load walks upward from cwd to the first directory holding forge.yaml and
// parses it. A workspace without forge.yaml runs entirely on defaults rooted
// at cwd.
func (l *Loader) Load(cwd string) (*domain.EngineConfig, error) {
	configPath, found := findConfiguration(cwd)
	if !found {
		return defaults(cwd), nil
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // Path discovered under the caller's cwd
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file forgeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return l.build(filepath.Dir(configPath), file)
}

// findConfiguration walks from cwd to the filesystem root looking for
// forge.yaml.
func findConfiguration(cwd string) (string, bool) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func defaults(root string) *domain.EngineConfig {
	policy := retry.DefaultPolicy()
	return &domain.EngineConfig{
		Root:               root,
		NATSURL:            "nats://127.0.0.1:4222",
		CallTimeout:        defaultCallTimeout,
		RetryMode:          string(policy.Mode),
		RetryInitial:       policy.Initial,
		RetryMax:           policy.Max,
		RetryMaxRetries:    policy.MaxRetries,
		StopOnFirstFailure: true,
	}
}

func (l *Loader) build(root string, file forgeFile) (*domain.EngineConfig, error) {
	cfg := defaults(root)

	if file.Transport.URL != "" {
		cfg.NATSURL = file.Transport.URL
	}
	if err := parseDuration(file.Transport.CallTimeout, &cfg.CallTimeout); err != nil {
		return nil, zerr.Wrap(err, "transport.callTimeout")
	}
	if file.Transport.Retry.Mode != "" {
		switch retry.BackoffMode(file.Transport.Retry.Mode) {
		case retry.BackoffFixed, retry.BackoffLinear, retry.BackoffExponential:
			cfg.RetryMode = file.Transport.Retry.Mode
		default:
			l.logger.Warn("unknown transport.retry.mode " + file.Transport.Retry.Mode + ", using " + cfg.RetryMode)
		}
	}
	if err := parseDuration(file.Transport.Retry.Initial, &cfg.RetryInitial); err != nil {
		return nil, zerr.Wrap(err, "transport.retry.initial")
	}
	if err := parseDuration(file.Transport.Retry.Max, &cfg.RetryMax); err != nil {
		return nil, zerr.Wrap(err, "transport.retry.max")
	}
	if file.Transport.Retry.MaxRetries != nil {
		cfg.RetryMaxRetries = *file.Transport.Retry.MaxRetries
	}

	cfg.ProjectedDirs = file.Journal.ProjectedDirs
	cfg.TreatDirChangesAsUnknown = file.Journal.TreatDirChangesAsUnknown
	cfg.StopOnFirstFailure = !file.Recovery.ContinueOnFailure

	policy := retry.NewPolicy(retry.BackoffMode(cfg.RetryMode), cfg.RetryInitial, cfg.RetryMax, cfg.RetryMaxRetries)
	if err := policy.Validate(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return cfg, nil
}

func parseDuration(raw string, out *time.Duration) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid duration"), "value", raw)
	}
	*out = d
	return nil
}
