package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/state"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/coordinator"
	"go.trai.ch/forge/internal/engine/recovery"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	app           *App
	store         *mocks.MockStateStore
	fingerprinter *mocks.MockFingerprinter
	changeJournal *mocks.MockChangeJournal
	loader        *mocks.MockConfigLoader
	evaluator     *mocks.MockEvaluator
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	logger.EXPECT().SetJSON(gomock.Any()).AnyTimes()
	logger.EXPECT().SetOutput(gomock.Any()).AnyTimes()

	f := &appFixture{
		store:         mocks.NewMockStateStore(ctrl),
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		changeJournal: mocks.NewMockChangeJournal(ctrl),
		loader:        mocks.NewMockConfigLoader(ctrl),
		evaluator:     mocks.NewMockEvaluator(ctrl),
	}
	f.app = New(
		f.loader,
		logger,
		f.store,
		f.fingerprinter,
		f.changeJournal,
		coordinator.New(logger),
		recovery.NewPipeline(logger),
	)
	return f
}

// envOnlySnapshot builds a snapshot observing a single environment variable,
// so reobservation stays off the filesystem.
func envOnlySnapshot(t *testing.T, name, value string) *domain.Snapshot {
	t.Helper()
	b := domain.NewSnapshotBuilder()
	require.NoError(t, b.ObserveEnv(name, &value))
	snap, err := b.Seal()
	require.NoError(t, err)
	return snap
}

func snapshotBytes(t *testing.T, s *domain.Snapshot) []byte {
	t.Helper()
	data, err := json.MarshalIndent(s.ToRecord(), "", "  ")
	require.NoError(t, err)
	return data
}

func TestApp_DecideWithoutCachedSnapshot(t *testing.T) {
	f := newAppFixture(t)
	f.store.EXPECT().Read(domain.SnapshotKey).Return(nil, nil)

	decision, current, err := f.app.decide(context.Background(), &domain.EngineConfig{}, RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.FullReEvaluation, decision.Kind)
	assert.Equal(t, "no cached snapshot", decision.Reason)
	assert.True(t, current.IsEmpty())
}

func TestApp_DecideWithReuseDisabled(t *testing.T) {
	f := newAppFixture(t)
	snap := envOnlySnapshot(t, "FORGE_TEST_CC", "gcc")
	f.store.EXPECT().Read(domain.SnapshotKey).Return(snapshotBytes(t, snap), nil)

	decision, _, err := f.app.decide(context.Background(), &domain.EngineConfig{}, RunOptions{NoReuse: true})

	require.NoError(t, err)
	assert.Equal(t, domain.FullReEvaluation, decision.Kind)
	assert.Equal(t, "reuse disabled", decision.Reason)
}

func TestApp_DecideReusesVerbatimWhenNothingChanged(t *testing.T) {
	f := newAppFixture(t)
	t.Setenv("FORGE_TEST_CC", "gcc")
	snap := envOnlySnapshot(t, "FORGE_TEST_CC", "gcc")

	f.store.EXPECT().Read(domain.SnapshotKey).Return(snapshotBytes(t, snap), nil)
	f.store.EXPECT().Read(domain.JournalCursorKey).Return(nil, nil)
	f.changeJournal.EXPECT().
		Scan(gomock.Any(), "", gomock.Any()).
		Return(ports.ScanResult{Succeeded: true, Cursor: "4"}, nil)
	f.store.EXPECT().Write(domain.JournalCursorKey, []byte("4")).Return(nil)

	decision, current, err := f.app.decide(context.Background(), &domain.EngineConfig{}, RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ReuseVerbatim, decision.Kind)
	assert.True(t, snap.Except(current).IsEmpty())
}

func TestApp_DecideChangedEnvForcesPatch(t *testing.T) {
	f := newAppFixture(t)
	t.Setenv("FORGE_TEST_CC", "clang")
	snap := envOnlySnapshot(t, "FORGE_TEST_CC", "gcc")

	f.store.EXPECT().Read(domain.SnapshotKey).Return(snapshotBytes(t, snap), nil)
	f.store.EXPECT().Read(domain.JournalCursorKey).Return([]byte("3"), nil)
	f.changeJournal.EXPECT().
		Scan(gomock.Any(), "3", gomock.Any()).
		Return(ports.ScanResult{Succeeded: true, Cursor: "4"}, nil)
	f.store.EXPECT().Write(domain.JournalCursorKey, []byte("4")).Return(nil)

	decision, _, err := f.app.decide(context.Background(), &domain.EngineConfig{}, RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ReuseWithPatch, decision.Kind)
	assert.Equal(t, []string{"FORGE_TEST_CC"}, decision.AffectedEnv)
}

func TestApp_DecideUnreliableScanForcesFullReEvaluation(t *testing.T) {
	f := newAppFixture(t)
	t.Setenv("FORGE_TEST_CC", "gcc")
	snap := envOnlySnapshot(t, "FORGE_TEST_CC", "gcc")

	f.store.EXPECT().Read(domain.SnapshotKey).Return(snapshotBytes(t, snap), nil)
	f.store.EXPECT().Read(domain.JournalCursorKey).Return([]byte("3"), nil)
	f.changeJournal.EXPECT().
		Scan(gomock.Any(), "3", gomock.Any()).
		Return(ports.ScanResult{Succeeded: false, Cursor: "4"}, nil)
	f.store.EXPECT().Write(domain.JournalCursorKey, []byte("4")).Return(nil)

	decision, _, err := f.app.decide(context.Background(), &domain.EngineConfig{}, RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.FullReEvaluation, decision.Kind)
}

func TestApp_EvaluateStoresPlanAndGuardsMetadata(t *testing.T) {
	f := newAppFixture(t)
	f.app.WithEvaluator(f.evaluator)
	decision := domain.ReuseDecision{Kind: domain.FullReEvaluation}

	f.evaluator.EXPECT().
		EvaluateMetadata(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, builder ports.PlanBuilder) error {
			// During metadata evaluation the installed builder must reject
			// structural mutations and permit bookkeeping.
			id, ok := builder.AddStep(ports.StepSpec{Module: "core"})
			assert.Zero(t, id)
			assert.False(t, ok)
			assert.True(t, builder.DeclareValue("cflags"))
			return nil
		})
	observed := envOnlySnapshot(t, "FORGE_TEST_CC", "gcc")
	f.evaluator.EXPECT().
		BuildPlan(gomock.Any(), decision).
		Return([]byte(`{"steps":[]}`), observed, nil)
	f.store.EXPECT().Write(domain.PlanKey, []byte(`{"steps":[]}`)).Return(nil)

	got, err := f.app.evaluate(context.Background(), decision)
	require.NoError(t, err)
	assert.Same(t, observed, got)
}

func TestApp_EvaluateWithoutEvaluatorIsSkipped(t *testing.T) {
	f := newAppFixture(t)
	// No store write, no evaluator call: evaluation belongs to the embedder.
	observed, err := f.app.evaluate(context.Background(), domain.ReuseDecision{})
	require.NoError(t, err)
	assert.Nil(t, observed)
}

func TestApp_PersistsEvaluationObservations(t *testing.T) {
	f := newAppFixture(t)
	f.app.WithEvaluator(f.evaluator)

	// First run: no cached snapshot, full re-evaluation.
	f.store.EXPECT().Read(domain.SnapshotKey).Return(nil, nil)

	b := domain.NewSnapshotBuilder()
	require.NoError(t, b.ObservePath("/src/a.txt", 0xdeadbeef, domain.KindContent))
	require.NoError(t, b.ObserveEnv("CC", strptrOf("gcc")))
	observed, err := b.Seal()
	require.NoError(t, err)

	f.evaluator.EXPECT().EvaluateMetadata(gomock.Any(), gomock.Any()).Return(nil)
	f.evaluator.EXPECT().BuildPlan(gomock.Any(), gomock.Any()).Return([]byte("plan"), observed, nil)
	f.store.EXPECT().Write(domain.PlanKey, []byte("plan")).Return(nil)

	// The persisted snapshot must carry the pass's observations, not the
	// pre-evaluation (empty) one.
	f.store.EXPECT().
		Write(domain.SnapshotKey, gomock.Any()).
		DoAndReturn(func(_ string, data []byte) error {
			var rec domain.SnapshotRecord
			require.NoError(t, json.Unmarshal(data, &rec))
			persisted, err := domain.SnapshotFromRecord(rec)
			require.NoError(t, err)
			assert.True(t, observed.Except(persisted).IsEmpty())
			assert.True(t, persisted.Except(observed).IsEmpty())
			return nil
		})

	require.NoError(t, f.app.prepare(context.Background(), &domain.EngineConfig{}, RunOptions{}))
}

func strptrOf(s string) *string { return &s }

func TestApp_SnapshotRoundTripThroughStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	store := state.NewStore(t.TempDir())
	a := New(nil, logger, store, nil, nil, coordinator.New(logger), recovery.NewPipeline(logger))

	snap := envOnlySnapshot(t, "PATH", "/usr/bin")
	require.NoError(t, a.persistSnapshot(snap))

	loaded, err := a.loadSnapshot()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, snap.Except(loaded).IsEmpty())
	assert.True(t, loaded.Except(snap).IsEmpty())
}

func TestApp_IsCorruptionClassifiesWrappedSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "snapshot version mismatch",
			err:  zerr.With(domain.ErrSnapshotVersion, "found", 2),
			want: true,
		},
		{
			name: "marker decode failure",
			err:  zerr.With(domain.ErrMarkerDecodeFailed, "action", "plan-cache"),
			want: true,
		},
		{
			name: "plain transport error",
			err:  zerr.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCorruption(tt.err))
		})
	}
}
