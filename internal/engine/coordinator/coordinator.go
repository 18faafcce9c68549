// Package coordinator implements the master side of the worker coordination
// protocol: one authoritative session per worker, a strict state machine and
// dedup/ordering guarantees for inbound calls.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

const tracerName = "forge/coordinator"

// Coordinator is the master-side endpoint of the worker protocol. Inbound
// calls from distinct workers proceed concurrently; one worker's calls are
// processed in issuance order.
type Coordinator struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	logger ports.Logger
	tracer trace.Tracer
}

// New creates a coordinator.
func New(logger ports.Logger) *Coordinator {
	return &Coordinator{
		sessions: make(map[string]*Session),
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// session returns the session for a worker, creating it on first contact.
func (c *Coordinator) session(workerID string) *Session {
	c.mu.RLock()
	s, ok := c.sessions[workerID]
	c.mu.RUnlock()
	if ok {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[workerID]; ok {
		return s
	}
	s = newSession(workerID)
	c.sessions[workerID] = s
	return s
}

// HandleAttach processes a worker's AttachCompleted call. Repeated attaches
// before a terminal outcome are deduplicated by worker identity and succeed
// idempotently.
func (c *Coordinator) HandleAttach(ctx context.Context, info ports.AttachInfo) error {
	if info.WorkerID == "" {
		return domain.ErrWorkerIDMissing
	}

	_, span := c.tracer.Start(ctx, "coordinator.attach",
		trace.WithAttributes(attribute.String("worker.id", info.WorkerID)))
	defer span.End()

	s := c.session(info.WorkerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.SessionAttached {
		// Duplicate attach: the first one won, report success.
		s.recordOutcome(domain.OutcomeSucceeded)
		return nil
	}

	if err := s.to(domain.SessionAttaching); err != nil {
		s.recordOutcome(domain.OutcomeFailedFatal)
		return err
	}
	if err := s.to(domain.SessionAttached); err != nil {
		s.recordOutcome(domain.OutcomeFailedFatal)
		return err
	}

	s.endpoint = info.Endpoint
	s.slots = info.Slots
	s.attachedAt = time.Now()
	s.recordOutcome(domain.OutcomeSucceeded)

	c.logger.Info(fmt.Sprintf("worker %s attached (%s, %d slots)", info.WorkerID, info.Endpoint, info.Slots))
	return nil
}

// HandleNotify processes one progress notification from a worker.
func (c *Coordinator) HandleNotify(ctx context.Context, n ports.Notification) error {
	if n.WorkerID == "" {
		return domain.ErrWorkerIDMissing
	}

	_, span := c.tracer.Start(ctx, "coordinator.notify",
		trace.WithAttributes(
			attribute.String("worker.id", n.WorkerID),
			attribute.Int("steps.completed", len(n.CompletedSteps)),
		))
	defer span.End()

	c.mu.RLock()
	s, ok := c.sessions[n.WorkerID]
	c.mu.RUnlock()
	if !ok {
		return zerr.With(domain.ErrSessionNotFound, "worker", n.WorkerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.to(domain.SessionNotifying); err != nil {
		s.recordOutcome(domain.OutcomeFailedFatal)
		return err
	}

	s.recordSteps(n.CompletedSteps)
	s.recordOutcome(domain.OutcomeSucceeded)

	// Notifying is transient; the session settles back to attached.
	if err := s.to(domain.SessionAttached); err != nil {
		return err
	}
	return nil
}

// HandleClose processes a worker's graceful shutdown notice. Once closed, no
// further attach or notify calls are valid for the session.
func (c *Coordinator) HandleClose(ctx context.Context, workerID string) error {
	if workerID == "" {
		return domain.ErrWorkerIDMissing
	}

	_, span := c.tracer.Start(ctx, "coordinator.close",
		trace.WithAttributes(attribute.String("worker.id", workerID)))
	defer span.End()

	c.mu.RLock()
	s, ok := c.sessions[workerID]
	c.mu.RUnlock()
	if !ok {
		return zerr.With(domain.ErrSessionNotFound, "worker", workerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.to(domain.SessionClosing); err != nil {
		s.recordOutcome(domain.OutcomeFailedFatal)
		return err
	}
	if err := s.to(domain.SessionClosed); err != nil {
		return err
	}
	s.recordOutcome(domain.OutcomeSucceeded)

	c.logger.Info(fmt.Sprintf("worker %s closed", workerID))
	return nil
}

// Fail moves a worker session to the terminal failed state after an
// unrecoverable transport error. Failing an already-terminal session is a no-op.
func (c *Coordinator) Fail(workerID string, cause error) {
	c.mu.RLock()
	s, ok := c.sessions[workerID]
	c.mu.RUnlock()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return
	}
	if err := s.to(domain.SessionFailed); err != nil {
		return
	}
	s.recordOutcome(domain.OutcomeFailedFatal)

	c.logger.Error(zerr.With(zerr.Wrap(cause, domain.ErrUnrecoverable.Error()), "worker", workerID))
}

// State returns the protocol state of a worker session.
func (c *Coordinator) State(workerID string) (domain.SessionState, bool) {
	c.mu.RLock()
	s, ok := c.sessions[workerID]
	c.mu.RUnlock()
	if !ok {
		return domain.SessionUnattached, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, true
}

// CompletedSteps returns the deduplicated step identifiers a worker has
// reported, in first-report order.
func (c *Coordinator) CompletedSteps(workerID string) []uint64 {
	c.mu.RLock()
	s, ok := c.sessions[workerID]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.completedSteps))
	copy(out, s.completedSteps)
	return out
}

// Sessions returns a read-only view of every session, for orchestration.
func (c *Coordinator) Sessions() []SessionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]SessionInfo, 0, len(c.sessions))
	for _, s := range c.sessions {
		s.mu.Lock()
		out = append(out, s.info())
		s.mu.Unlock()
	}
	return out
}
