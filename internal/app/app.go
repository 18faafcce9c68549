// Package app implements the application layer for forge.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/forge/internal/adapters/natsrpc"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/coordinator"
	"go.trai.ch/forge/internal/engine/guard"
	"go.trai.ch/forge/internal/engine/journal"
	"go.trai.ch/forge/internal/engine/recovery"
	"go.trai.ch/forge/internal/engine/reuse"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// telemetryFlushTimeout bounds the end-of-run span flush.
const telemetryFlushTimeout = 2 * time.Second

// App orchestrates one engine run: recovery, the reuse decision, optional
// re-evaluation behind the mutation guard, and worker coordination.
type App struct {
	configLoader  ports.ConfigLoader
	logger        ports.Logger
	store         ports.StateStore
	fingerprinter ports.Fingerprinter
	changeJournal ports.ChangeJournal
	coordinator   *coordinator.Coordinator
	pipeline      *recovery.Pipeline

	// evaluator is the external specification-evaluation collaborator.
	// Without one, the engine records its decision and leaves evaluation to
	// whoever embeds it.
	evaluator ports.Evaluator

	// telemetry owns the process-global tracer provider; held so a run can
	// flush pending spans on the way out.
	telemetry *telemetry.Provider
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.StateStore,
	fingerprinter ports.Fingerprinter,
	changeJournal ports.ChangeJournal,
	coord *coordinator.Coordinator,
	pipeline *recovery.Pipeline,
) *App {
	return &App{
		configLoader:  loader,
		logger:        log,
		store:         store,
		fingerprinter: fingerprinter,
		changeJournal: changeJournal,
		coordinator:   coord,
		pipeline:      pipeline,
	}
}

// WithEvaluator installs the external plan evaluator.
func (a *App) WithEvaluator(e ports.Evaluator) *App {
	a.evaluator = e
	return a
}

// WithTelemetry hands the App the tracer provider for end-of-run flushing.
func (a *App) WithTelemetry(p *telemetry.Provider) *App {
	a.telemetry = p
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// JSON switches log output to JSON.
	JSON bool
	// NoReuse bypasses the reuse decision and forces full re-evaluation.
	NoReuse bool
}

// Run executes one master pass: startup recovery, the reuse decision, then
// serving worker coordination until the context ends. A failed run is marked
// through the recovery pipeline so the next startup can repair.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.JSON {
		a.logger.SetJSON(true)
	}
	if a.telemetry != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
			defer cancel()
			_ = a.telemetry.Shutdown(shutdownCtx)
		}()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "resolving working directory")
	}
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "loading configuration")
	}

	if err := a.runEngine(ctx, cfg, opts); err != nil {
		a.markFailure(ctx, err)
		return zerr.Wrap(err, domain.ErrEngineRunFailed.Error())
	}
	return nil
}

func (a *App) runEngine(ctx context.Context, cfg *domain.EngineConfig, opts RunOptions) error {
	if ok := a.pipeline.RunStartupRecovery(ctx, cfg.StopOnFirstFailure); !ok {
		return zerr.New("startup recovery failed")
	}

	if err := a.prepare(ctx, cfg, opts); err != nil {
		return err
	}

	return a.serve(ctx, cfg)
}

// prepare makes the reuse decision, runs evaluation when needed and persists
// the snapshot for the next run. When evaluation ran, the persisted snapshot
// is the one built from the observations recorded during that pass, not the
// pre-evaluation reobservation: anything the evaluator newly observed has to
// be visible to the next reuse decision.
func (a *App) prepare(ctx context.Context, cfg *domain.EngineConfig, opts RunOptions) error {
	decision, current, err := a.decide(ctx, cfg, opts)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("reuse decision: %s", decision.Kind))

	if decision.Kind != domain.ReuseVerbatim {
		observed, err := a.evaluate(ctx, decision)
		if err != nil {
			return err
		}
		if observed != nil {
			current = observed
		}
	}

	return a.persistSnapshot(current)
}

// decide loads the cached snapshot, scans the change journal and produces
// the reuse decision plus the current snapshot to persist.
func (a *App) decide(ctx context.Context, cfg *domain.EngineConfig, opts RunOptions) (domain.ReuseDecision, *domain.Snapshot, error) {
	prev, err := a.loadSnapshot()
	if err != nil {
		return domain.ReuseDecision{}, nil, err
	}
	if prev == nil || opts.NoReuse {
		reason := "no cached snapshot"
		if opts.NoReuse {
			reason = "reuse disabled"
		}
		return domain.ReuseDecision{Kind: domain.FullReEvaluation, Reason: reason}, domain.EmptySnapshot(), nil
	}

	cls, cursor, err := a.classifyChanges(ctx, cfg)
	if err != nil {
		return domain.ReuseDecision{}, nil, err
	}
	if err := a.store.Write(domain.JournalCursorKey, []byte(cursor)); err != nil {
		return domain.ReuseDecision{}, nil, err
	}

	current, err := a.reobserve(prev)
	if err != nil {
		return domain.ReuseDecision{}, nil, err
	}

	decision := reuse.DecideReuse(prev, current, cls, reuse.Options{
		TreatDirChangesAsUnknown: cfg.TreatDirChangesAsUnknown,
	})
	return decision, current, nil
}

// classifyChanges runs one journal scan through a fresh classifier.
func (a *App) classifyChanges(ctx context.Context, cfg *domain.EngineConfig) (journal.Result, string, error) {
	cursorBytes, err := a.store.Read(domain.JournalCursorKey)
	if err != nil {
		return journal.Result{}, "", err
	}

	classifier := journal.NewClassifier(journal.WithProjectedDirs(cfg.ProjectedDirs))
	var observeErr error
	scan, err := a.changeJournal.Scan(ctx, string(cursorBytes), func(ev ports.ChangeEvent) {
		if observeErr == nil {
			observeErr = classifier.Observe(ev)
		}
	})
	if err != nil {
		return journal.Result{}, "", zerr.Wrap(err, "scanning change journal")
	}
	if observeErr != nil {
		return journal.Result{}, "", observeErr
	}

	res, err := classifier.Finalize(scan)
	if err != nil {
		return journal.Result{}, "", err
	}
	return res, scan.Cursor, nil
}

// reobserve rebuilds the current snapshot by re-fingerprinting everything
// the cached snapshot observed. A path that no longer exists is recorded
// with the zero fingerprint, so its disappearance shows up in the diff.
func (a *App) reobserve(prev *domain.Snapshot) (*domain.Snapshot, error) {
	b := domain.NewSnapshotBuilder()

	for _, p := range prev.PathInputs {
		fp, err := a.fingerprinter.FingerprintPath(p.Path)
		if err != nil {
			fp = 0
		}
		if err := b.ObservePath(p.Path, fp, p.Kind); err != nil {
			return nil, err
		}
	}
	for _, e := range prev.EnvInputs {
		var value *string
		if v, ok := os.LookupEnv(e.Name); ok {
			value = &v
		}
		if err := b.ObserveEnv(e.Name, value); err != nil {
			return nil, err
		}
	}
	// Mount resolution belongs to an external collaborator; observations
	// carry over unchanged.
	for _, m := range prev.MountInputs {
		if err := b.ObserveMount(m.Name, m.Path); err != nil {
			return nil, err
		}
	}

	return b.Seal()
}

// evaluate runs the external evaluator with the mutation guard installed for
// the metadata phase. It returns the snapshot of observations recorded during
// the pass, or nil when no evaluator is installed.
func (a *App) evaluate(ctx context.Context, decision domain.ReuseDecision) (*domain.Snapshot, error) {
	if a.evaluator == nil {
		a.logger.Info("no evaluator installed, evaluation left to the embedding engine")
		return nil, nil
	}

	if err := a.evaluator.EvaluateMetadata(ctx, guard.New(a.logger)); err != nil {
		return nil, zerr.Wrap(err, "metadata evaluation failed")
	}

	plan, observed, err := a.evaluator.BuildPlan(ctx, decision)
	if err != nil {
		return nil, zerr.Wrap(err, "plan evaluation failed")
	}
	if err := a.store.Write(domain.PlanKey, plan); err != nil {
		return nil, err
	}
	return observed, nil
}

// serve runs worker coordination until the context ends.
func (a *App) serve(ctx context.Context, cfg *domain.EngineConfig) error {
	server, err := natsrpc.NewServer(cfg.NATSURL, a.coordinator, a.logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(ctx); err != nil {
			return err
		}
		a.logger.Info("worker coordination serving on " + cfg.NATSURL)
		<-ctx.Done()
		server.Stop()
		return nil
	})
	return g.Wait()
}

func (a *App) loadSnapshot() (*domain.Snapshot, error) {
	data, err := a.store.Read(domain.SnapshotKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var rec domain.SnapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.Wrap(err, "decoding cached snapshot")
	}
	return domain.SnapshotFromRecord(rec)
}

func (a *App) persistSnapshot(s *domain.Snapshot) error {
	data, err := json.MarshalIndent(s.ToRecord(), "", "  ")
	if err != nil {
		return zerr.Wrap(err, "encoding snapshot")
	}
	return a.store.Write(domain.SnapshotKey, data)
}

// markFailure records the failure through the recovery pipeline. The root
// cause is classified from the error chain: corrupt persisted state asks for
// a cache repair, everything else is treated as a crash-equivalent.
func (a *App) markFailure(ctx context.Context, cause error) {
	rootCause := domain.RootCauseCrash
	if isCorruption(cause) {
		rootCause = domain.RootCauseCorruption
	}
	if ok := a.pipeline.MarkFailure(ctx, cause, rootCause); !ok {
		a.logger.Warn("one or more failure markers could not be persisted")
	}
}

func isCorruption(err error) bool {
	for _, sentinel := range []error{
		domain.ErrSnapshotVersion,
		domain.ErrSnapshotUnsorted,
		domain.ErrInvalidFingerprint,
		domain.ErrMarkerDecodeFailed,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
