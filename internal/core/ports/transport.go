package ports

import (
	"context"
	"time"

	"go.trai.ch/forge/internal/core/domain"
)

// AttachInfo describes a worker that has finished local initialization.
type AttachInfo struct {
	// WorkerID is the worker's unique identity; the master deduplicates by it.
	WorkerID string
	// Endpoint is the worker's network endpoint for assignment delivery.
	Endpoint string
	// Slots is the number of concurrent build steps the worker accepts.
	Slots int
}

// Notification is one incremental progress report from a worker.
type Notification struct {
	WorkerID string
	// Status is a free-form progress payload.
	Status string
	// CompletedSteps is the ordered list of step identifiers the worker has
	// completed. It is causally complete at the time of the call; no
	// ordering is guaranteed between separate notifications.
	CompletedSteps []uint64
}

// CallResult reports the classified outcome of one remote call.
type CallResult struct {
	Outcome  domain.CallOutcome
	Attempts int
	Duration time.Duration
	// Err carries the classified failure; nil on success or cancellation.
	Err error
}

// WorkerTransport is the worker-side client of the coordination protocol.
// Each operation is an independent remote call with its own retry policy.
//
//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type WorkerTransport interface {
	// AttachCompleted informs the master the worker is ready to receive
	// assignments. Repeated calls before a terminal outcome are idempotent.
	AttachCompleted(ctx context.Context, info AttachInfo) CallResult

	// Notify streams incremental progress to the master. Cancelling ctx
	// abandons the local wait without retracting acknowledged work; the
	// result then reports OutcomeCancelled.
	Notify(ctx context.Context, n Notification) CallResult

	// Close sends a graceful shutdown notice. Once issued, no further
	// Attach or Notify calls are valid for this worker session. Callers
	// must not race Close with an in-flight Notify for the same worker.
	Close(ctx context.Context, workerID string) CallResult
}
