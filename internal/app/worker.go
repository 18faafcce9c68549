package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// heartbeatInterval paces idle progress notifications while a worker waits
// for assignments.
const heartbeatInterval = 30 * time.Second

// closeTimeout bounds the graceful shutdown notice after the worker context
// already ended.
const closeTimeout = 5 * time.Second

// WorkerOptions configuration for the Worker method.
type WorkerOptions struct {
	// WorkerID identifies this worker to the master. Empty generates one.
	WorkerID string
	// Endpoint is the worker's assignment-delivery endpoint.
	Endpoint string
	// Slots is the number of concurrent build steps this worker accepts.
	Slots int
}

// Worker runs the worker side of the coordination protocol: attach, heartbeat
// until the context ends, then a graceful close. Step execution itself
// belongs to the embedding engine; this loop owns only the protocol.
func (a *App) Worker(ctx context.Context, transport ports.WorkerTransport, opts WorkerOptions) error {
	workerID := opts.WorkerID
	if workerID == "" {
		workerID = uuid.NewString()
	}
	if opts.Slots <= 0 {
		opts.Slots = 1
	}

	res := transport.AttachCompleted(ctx, ports.AttachInfo{
		WorkerID: workerID,
		Endpoint: opts.Endpoint,
		Slots:    opts.Slots,
	})
	if !res.Outcome.Success() {
		if res.Outcome == domain.OutcomeCancelled {
			return nil
		}
		return zerr.With(zerr.Wrap(res.Err, "attach failed"), "outcome", res.Outcome.String())
	}
	a.logger.Info(fmt.Sprintf("worker %s attached after %d attempt(s)", workerID, res.Attempts))

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return a.closeSession(transport, workerID)
		case <-ticker.C:
			res := transport.Notify(ctx, ports.Notification{
				WorkerID: workerID,
				Status:   "idle",
			})
			switch {
			case res.Outcome == domain.OutcomeCancelled:
				// Abandoned, not rejected; the close below still runs.
				return a.closeSession(transport, workerID)
			case res.Outcome == domain.OutcomeFailedFatal:
				return zerr.With(zerr.Wrap(res.Err, "notify failed"), "worker", workerID)
			case !res.Outcome.Success():
				a.logger.Warn(fmt.Sprintf("worker %s notify outcome: %s", workerID, res.Outcome))
			}
		}
	}
}

// closeSession issues the shutdown notice on a fresh context: the worker
// context is already done by the time we get here.
func (a *App) closeSession(transport ports.WorkerTransport, workerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	res := transport.Close(ctx, workerID)
	if !res.Outcome.Success() {
		return zerr.With(zerr.Wrap(res.Err, "close failed"), "worker", workerID)
	}
	a.logger.Info(fmt.Sprintf("worker %s closed", workerID))
	return nil
}
