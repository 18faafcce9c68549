package coordinator

import (
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/domain"
)

// Session is the master's authoritative record of one worker. It is owned
// exclusively by the coordinator; the worker holds only its own local view.
// The per-session mutex serializes that worker's calls (per-worker FIFO)
// without blocking calls from other workers.
type Session struct {
	mu sync.Mutex

	id       string
	endpoint string
	slots    int

	state         domain.SessionState
	lastOutcome   domain.CallOutcome
	lastOutcomeAt time.Time
	attachedAt    time.Time

	completedSteps []uint64
	seenSteps      map[uint64]struct{}
}

func newSession(id string) *Session {
	return &Session{
		id:        id,
		state:     domain.SessionUnattached,
		seenSteps: make(map[uint64]struct{}),
	}
}

// to applies one state transition under the session lock.
func (s *Session) to(target domain.SessionState) error {
	next, err := s.state.Transition(target)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Session) recordOutcome(outcome domain.CallOutcome) {
	s.lastOutcome = outcome
	s.lastOutcomeAt = time.Now()
}

// recordSteps appends newly completed step identifiers, deduplicating
// repeats across notifications.
func (s *Session) recordSteps(steps []uint64) {
	for _, step := range steps {
		if _, seen := s.seenSteps[step]; seen {
			continue
		}
		s.seenSteps[step] = struct{}{}
		s.completedSteps = append(s.completedSteps, step)
	}
}

// Snapshot of the session for orchestration queries.

// SessionInfo is a read-only view of one worker session.
type SessionInfo struct {
	WorkerID      string
	Endpoint      string
	Slots         int
	State         domain.SessionState
	LastOutcome   domain.CallOutcome
	LastOutcomeAt time.Time
	AttachedAt    time.Time
}

func (s *Session) info() SessionInfo {
	return SessionInfo{
		WorkerID:      s.id,
		Endpoint:      s.endpoint,
		Slots:         s.slots,
		State:         s.state,
		LastOutcome:   s.lastOutcome,
		LastOutcomeAt: s.lastOutcomeAt,
		AttachedAt:    s.attachedAt,
	}
}
