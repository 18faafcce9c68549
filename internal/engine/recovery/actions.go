package recovery

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// marker is the persisted record one action leaves behind at failure time.
type marker struct {
	Cause     string           `json:"cause"`
	RootCause domain.RootCause `json:"rootCause"`
	MarkedAt  time.Time        `json:"markedAt"`
}

func markerKey(name string) string {
	return "recovery/" + name
}

// markerAction holds the marker plumbing shared by the concrete actions.
// Each action uses its own marker key, so actions never interfere.
type markerAction struct {
	name      string
	store     ports.StateStore
	rootCause domain.RootCause
}

func (m markerAction) Name() string { return m.name }

func (m markerAction) ShouldRecover(_ context.Context) (bool, error) {
	data, err := m.store.Read(markerKey(m.name))
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	// A marker that cannot be decoded is itself corrupt persisted state.
	var mk marker
	if err := json.Unmarshal(data, &mk); err != nil {
		return false, zerr.With(domain.ErrMarkerDecodeFailed, "action", m.name)
	}
	return true, nil
}

func (m markerAction) ShouldMarkFailure(_ error, rootCause domain.RootCause) bool {
	return rootCause == m.rootCause || rootCause == domain.RootCauseUnknown
}

func (m markerAction) MarkFailure(_ context.Context, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	data, err := json.Marshal(marker{
		Cause:     msg,
		RootCause: m.rootCause,
		MarkedAt:  time.Now().UTC(),
	})
	if err != nil {
		return zerr.Wrap(err, "encoding recovery marker")
	}
	return m.store.Write(markerKey(m.name), data)
}

func (m markerAction) clearMarker() error {
	return m.store.Delete(markerKey(m.name))
}

// PlanCacheAction drops the cached plan and its snapshot when a previous run
// marked them suspect. A dropped cache forces a full re-evaluation on the
// next run, which is slow but always correct.
type PlanCacheAction struct {
	markerAction
}

// NewPlanCacheAction creates the plan-cache recovery action.
func NewPlanCacheAction(store ports.StateStore) *PlanCacheAction {
	return &PlanCacheAction{markerAction{
		name:      "plan-cache",
		store:     store,
		rootCause: domain.RootCauseCorruption,
	}}
}

func (a *PlanCacheAction) Recover(_ context.Context) error {
	if err := a.store.Delete(domain.PlanKey); err != nil {
		return err
	}
	if err := a.store.Delete(domain.SnapshotKey); err != nil {
		return err
	}
	return a.clearMarker()
}

// JournalCursorAction drops the persisted change-journal cursor after a
// crash. Without a trusted cursor the next scan reports unreliable, and the
// reuse decision falls back to full re-evaluation.
type JournalCursorAction struct {
	markerAction
}

// NewJournalCursorAction creates the journal-cursor recovery action.
func NewJournalCursorAction(store ports.StateStore) *JournalCursorAction {
	return &JournalCursorAction{markerAction{
		name:      "journal-cursor",
		store:     store,
		rootCause: domain.RootCauseCrash,
	}}
}

func (a *JournalCursorAction) Recover(_ context.Context) error {
	if err := a.store.Delete(domain.JournalCursorKey); err != nil {
		return err
	}
	return a.clearMarker()
}

// TempDirsAction clears the engine's temp directory, which may hold torn
// intermediate state after a crash.
type TempDirsAction struct {
	markerAction
	tmpPath string
}

// NewTempDirsAction creates the temp-directory recovery action.
func NewTempDirsAction(store ports.StateStore, tmpPath string) *TempDirsAction {
	return &TempDirsAction{
		markerAction: markerAction{
			name:      "temp-dirs",
			store:     store,
			rootCause: domain.RootCauseCrash,
		},
		tmpPath: tmpPath,
	}
}

func (a *TempDirsAction) Recover(_ context.Context) error {
	if err := os.RemoveAll(a.tmpPath); err != nil {
		return zerr.With(zerr.Wrap(err, "clearing temp directory"), "path", a.tmpPath)
	}
	if err := os.MkdirAll(a.tmpPath, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "recreating temp directory"), "path", a.tmpPath)
	}
	return a.clearMarker()
}
