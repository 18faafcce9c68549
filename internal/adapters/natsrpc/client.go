package natsrpc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/retry"
	"go.trai.ch/zerr"
)

var _ ports.WorkerTransport = (*Client)(nil)

// DefaultCallTimeout bounds a single request/reply round trip.
const DefaultCallTimeout = 5 * time.Second

// Client is the worker-side transport. Every call reports a classified
// outcome; callers branch on the classification, never on raw transport
// errors.
type Client struct {
	conn    *nats.Conn
	timeout time.Duration
	policy  retry.Policy
	logger  ports.Logger
}

// NewClient connects to the NATS server at url.
func NewClient(url string, timeout time.Duration, policy retry.Policy, logger ports.Logger) (*Client, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	conn, err := nats.Connect(url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "connecting to coordination transport"), "url", url)
	}
	return &Client{conn: conn, timeout: timeout, policy: policy, logger: logger}, nil
}

// Shutdown releases the connection.
func (c *Client) Shutdown() {
	c.conn.Close()
}

// AttachCompleted informs the master the worker is ready.
func (c *Client) AttachCompleted(ctx context.Context, info ports.AttachInfo) ports.CallResult {
	return c.call(ctx, SubjectAttach, attachRequest{
		WorkerID: info.WorkerID,
		Endpoint: info.Endpoint,
		Slots:    info.Slots,
	})
}

// Notify streams incremental progress to the master.
func (c *Client) Notify(ctx context.Context, n ports.Notification) ports.CallResult {
	return c.call(ctx, SubjectNotify, notifyRequest{
		WorkerID:       n.WorkerID,
		Status:         n.Status,
		CompletedSteps: n.CompletedSteps,
	})
}

// Close sends the graceful shutdown notice for a worker.
func (c *Client) Close(ctx context.Context, workerID string) ports.CallResult {
	return c.call(ctx, SubjectClose, closeRequest{WorkerID: workerID})
}

// call runs the request/retry loop for one subject. Retryable failures are
// retried up to the policy's budget with backoff; a retried call that
// eventually lands reports succeeded-after-retry.
func (c *Client) call(ctx context.Context, subject string, req any) ports.CallResult {
	start := time.Now()

	data, err := json.Marshal(req)
	if err != nil {
		return ports.CallResult{
			Outcome:  domain.OutcomeFailedFatal,
			Attempts: 0,
			Duration: time.Since(start),
			Err:      zerr.Wrap(err, "encoding request"),
		}
	}

	attempts := 0
	for {
		attempts++
		outcome, callErr := c.attempt(ctx, subject, data)

		switch outcome {
		case domain.OutcomeSucceeded:
			if attempts > 1 {
				outcome = domain.OutcomeSucceededAfterRetry
			}
			return ports.CallResult{Outcome: outcome, Attempts: attempts, Duration: time.Since(start)}
		case domain.OutcomeCancelled:
			return ports.CallResult{Outcome: outcome, Attempts: attempts, Duration: time.Since(start)}
		case domain.OutcomeFailedRetryable:
			if attempts <= c.policy.MaxRetries {
				if err := c.backoff(ctx, attempts); err != nil {
					return ports.CallResult{
						Outcome:  domain.OutcomeCancelled,
						Attempts: attempts,
						Duration: time.Since(start),
					}
				}
				continue
			}
			// Retries exhausted: the failure is final for this call.
			return ports.CallResult{
				Outcome:  domain.OutcomeFailedRetryable,
				Attempts: attempts,
				Duration: time.Since(start),
				Err:      zerr.With(zerr.Wrap(callErr, domain.ErrUnrecoverable.Error()), "subject", subject),
			}
		default:
			return ports.CallResult{
				Outcome:  domain.OutcomeFailedFatal,
				Attempts: attempts,
				Duration: time.Since(start),
				Err:      callErr,
			}
		}
	}
}

// attempt runs one request/reply round trip and classifies its result.
func (c *Client) attempt(ctx context.Context, subject string, data []byte) (domain.CallOutcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.conn.RequestWithContext(callCtx, subject, data)
	if err != nil {
		return classifyTransportErr(ctx, err)
	}

	var rep reply
	if err := json.Unmarshal(msg.Data, &rep); err != nil {
		return domain.OutcomeFailedFatal, zerr.Wrap(err, "decoding reply")
	}
	if !rep.OK {
		err := zerr.With(zerr.New(rep.Error), "subject", subject)
		if rep.Code == codeProtocolViolation {
			err = zerr.Wrap(err, domain.ErrProtocolViolation.Error())
		}
		return domain.OutcomeFailedFatal, err
	}
	return domain.OutcomeSucceeded, nil
}

// classifyTransportErr maps a raw transport error onto the outcome taxonomy.
// The caller's own cancellation wins over the per-call timeout.
func classifyTransportErr(ctx context.Context, err error) (domain.CallOutcome, error) {
	if ctx.Err() != nil {
		return domain.OutcomeCancelled, nil
	}
	if errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoResponders) ||
		errors.Is(err, context.DeadlineExceeded) {
		return domain.OutcomeFailedRetryable, err
	}
	if errors.Is(err, nats.ErrConnectionClosed) || errors.Is(err, nats.ErrConnectionDraining) {
		return domain.OutcomeFailedFatal, zerr.With(domain.ErrTransportClosed, "cause", err.Error())
	}
	return domain.OutcomeFailedFatal, zerr.Wrap(err, "transport call failed")
}

func (c *Client) backoff(ctx context.Context, retryCount int) error {
	timer := time.NewTimer(c.policy.Delay(retryCount))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
