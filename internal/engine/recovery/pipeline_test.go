package recovery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/recovery"
	"go.uber.org/mock/gomock"
)

// memStore is an in-memory ports.StateStore for marker round-trips.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (s *memStore) Read(key string) ([]byte, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (s *memStore) Write(key string, data []byte) error {
	s.data[key] = data
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

// fakeAction records invocations for ordering assertions.
type fakeAction struct {
	name       string
	should     bool
	recoverErr error
	markErr    error
	calls      *[]string
}

func (a *fakeAction) Name() string { return a.name }

func (a *fakeAction) ShouldRecover(context.Context) (bool, error) { return a.should, nil }

func (a *fakeAction) Recover(context.Context) error {
	*a.calls = append(*a.calls, "recover:"+a.name)
	return a.recoverErr
}

func (a *fakeAction) ShouldMarkFailure(error, domain.RootCause) bool { return true }

func (a *fakeAction) MarkFailure(context.Context, error) error {
	*a.calls = append(*a.calls, "mark:"+a.name)
	return a.markErr
}

func testLogger(t *testing.T) ports.Logger {
	t.Helper()
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLogger(ctrl)
	l.EXPECT().Info(gomock.Any()).AnyTimes()
	l.EXPECT().Warn(gomock.Any()).AnyTimes()
	l.EXPECT().Error(gomock.Any()).AnyTimes()
	return l
}

func TestPipeline_RejectsDuplicateActionNames(t *testing.T) {
	p := recovery.NewPipeline(testLogger(t))
	var calls []string

	require.NoError(t, p.Register(&fakeAction{name: "plan-cache", calls: &calls}))
	err := p.Register(&fakeAction{name: "plan-cache", calls: &calls})
	require.ErrorIs(t, err, domain.ErrDuplicateAction)
}

func TestPipeline_StartupStopsOnFirstFailure(t *testing.T) {
	p := recovery.NewPipeline(testLogger(t))
	var calls []string

	require.NoError(t, p.Register(&fakeAction{name: "first", should: true, calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "second", should: true, recoverErr: errors.New("boom"), calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "third", should: true, calls: &calls}))

	ok := p.RunStartupRecovery(context.Background(), true)
	assert.False(t, ok)
	assert.Equal(t, []string{"recover:first", "recover:second"}, calls)
}

func TestPipeline_StartupContinuesWhenConfigured(t *testing.T) {
	p := recovery.NewPipeline(testLogger(t))
	var calls []string

	require.NoError(t, p.Register(&fakeAction{name: "first", should: true, calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "second", should: true, recoverErr: errors.New("boom"), calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "third", should: true, calls: &calls}))

	ok := p.RunStartupRecovery(context.Background(), false)
	assert.False(t, ok)
	assert.Equal(t, []string{"recover:first", "recover:second", "recover:third"}, calls)
}

func TestPipeline_StartupSkipsActionsWithNothingToDo(t *testing.T) {
	p := recovery.NewPipeline(testLogger(t))
	var calls []string

	require.NoError(t, p.Register(&fakeAction{name: "idle", should: false, calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "busy", should: true, calls: &calls}))

	ok := p.RunStartupRecovery(context.Background(), true)
	assert.True(t, ok)
	assert.Equal(t, []string{"recover:busy"}, calls)
}

func TestPipeline_MarkFailureNeverStopsEarly(t *testing.T) {
	p := recovery.NewPipeline(testLogger(t))
	var calls []string

	require.NoError(t, p.Register(&fakeAction{name: "first", markErr: errors.New("disk full"), calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "second", calls: &calls}))
	require.NoError(t, p.Register(&fakeAction{name: "third", calls: &calls}))

	ok := p.MarkFailure(context.Background(), errors.New("crash"), domain.RootCauseCrash)
	assert.False(t, ok)
	assert.Equal(t, []string{"mark:first", "mark:second", "mark:third"}, calls)
}

func TestPlanCacheAction_MarkThenRecoverRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Write(domain.PlanKey, []byte("plan")))
	require.NoError(t, store.Write(domain.SnapshotKey, []byte("snapshot")))

	a := recovery.NewPlanCacheAction(store)

	// Corruption concerns the plan cache; a plain crash does not.
	assert.True(t, a.ShouldMarkFailure(errors.New("bad envelope"), domain.RootCauseCorruption))
	assert.True(t, a.ShouldMarkFailure(errors.New("???"), domain.RootCauseUnknown))
	assert.False(t, a.ShouldMarkFailure(errors.New("sigkill"), domain.RootCauseCrash))

	require.NoError(t, a.MarkFailure(ctx, errors.New("bad envelope")))
	should, err := a.ShouldRecover(ctx)
	require.NoError(t, err)
	require.True(t, should)

	require.NoError(t, a.Recover(ctx))

	data, err := store.Read(domain.PlanKey)
	require.NoError(t, err)
	assert.Nil(t, data)
	data, err = store.Read(domain.SnapshotKey)
	require.NoError(t, err)
	assert.Nil(t, data)

	// The marker is consumed; recovery does not repeat.
	should, err = a.ShouldRecover(ctx)
	require.NoError(t, err)
	assert.False(t, should)
}

func TestMarkerActions_CorruptMarkerIsDecodeFailure(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Write("recovery/plan-cache", []byte("{torn write")))

	a := recovery.NewPlanCacheAction(store)

	_, err := a.ShouldRecover(context.Background())
	require.ErrorIs(t, err, domain.ErrMarkerDecodeFailed)
}

func TestJournalCursorAction_DropsCursorOnCrash(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Write(domain.JournalCursorKey, []byte("cursor-42")))

	a := recovery.NewJournalCursorAction(store)
	assert.True(t, a.ShouldMarkFailure(errors.New("sigkill"), domain.RootCauseCrash))
	assert.False(t, a.ShouldMarkFailure(errors.New("bad envelope"), domain.RootCauseCorruption))

	require.NoError(t, a.MarkFailure(ctx, errors.New("sigkill")))
	require.NoError(t, a.Recover(ctx))

	data, err := store.Read(domain.JournalCursorKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestTempDirsAction_SweepsScratchState(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tmp := filepath.Join(t.TempDir(), "tmp")
	require.NoError(t, os.MkdirAll(tmp, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "torn.partial"), []byte("x"), 0o600))

	a := recovery.NewTempDirsAction(store, tmp)
	require.NoError(t, a.MarkFailure(ctx, errors.New("sigkill")))
	require.NoError(t, a.Recover(ctx))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
