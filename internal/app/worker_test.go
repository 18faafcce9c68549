package app

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/coordinator"
	"go.trai.ch/forge/internal/engine/recovery"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newWorkerFixture(t *testing.T) (*App, *mocks.MockWorkerTransport) {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := New(nil, logger, nil, nil, nil, coordinator.New(logger), recovery.NewPipeline(logger))
	return a, mocks.NewMockWorkerTransport(ctrl)
}

func TestWorker_AttachThenCloseOnContextEnd(t *testing.T) {
	a, transport := newWorkerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	transport.EXPECT().
		AttachCompleted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, info ports.AttachInfo) ports.CallResult {
			assert.Equal(t, "w-1", info.WorkerID)
			assert.Equal(t, "tcp://10.0.0.5:7000", info.Endpoint)
			assert.Equal(t, 4, info.Slots)
			// Cancel right after attach so the loop exits before the first
			// heartbeat tick.
			cancel()
			return ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1}
		})
	transport.EXPECT().
		Close(gomock.Any(), "w-1").
		Return(ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1})

	err := a.Worker(ctx, transport, WorkerOptions{
		WorkerID: "w-1",
		Endpoint: "tcp://10.0.0.5:7000",
		Slots:    4,
	})
	require.NoError(t, err)
}

func TestWorker_GeneratesIdentityAndDefaultsSlots(t *testing.T) {
	a, transport := newWorkerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	var seenID string
	transport.EXPECT().
		AttachCompleted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, info ports.AttachInfo) ports.CallResult {
			assert.NotEmpty(t, info.WorkerID)
			assert.Equal(t, 1, info.Slots)
			seenID = info.WorkerID
			cancel()
			return ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1}
		})
	transport.EXPECT().
		Close(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, workerID string) ports.CallResult {
			assert.Equal(t, seenID, workerID)
			return ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1}
		})

	require.NoError(t, a.Worker(ctx, transport, WorkerOptions{}))
}

func TestWorker_HeartbeatNotifiesWhileIdle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, transport := newWorkerFixture(t)
		ctx, cancel := context.WithCancel(context.Background())

		transport.EXPECT().
			AttachCompleted(gomock.Any(), gomock.Any()).
			Return(ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1})

		notifies := 0
		transport.EXPECT().
			Notify(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n ports.Notification) ports.CallResult {
				assert.Equal(t, "w-1", n.WorkerID)
				assert.Equal(t, "idle", n.Status)
				notifies++
				if notifies == 2 {
					cancel()
				}
				return ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1}
			}).
			Times(2)
		transport.EXPECT().
			Close(gomock.Any(), "w-1").
			Return(ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1})

		done := make(chan error, 1)
		go func() {
			done <- a.Worker(ctx, transport, WorkerOptions{WorkerID: "w-1"})
		}()

		require.NoError(t, <-done)
		synctest.Wait()
	})
}

func TestWorker_CancelledAttachIsNotAnError(t *testing.T) {
	a, transport := newWorkerFixture(t)

	transport.EXPECT().
		AttachCompleted(gomock.Any(), gomock.Any()).
		Return(ports.CallResult{Outcome: domain.OutcomeCancelled, Attempts: 1})

	require.NoError(t, a.Worker(context.Background(), transport, WorkerOptions{WorkerID: "w-1"}))
}

func TestWorker_FailedAttachSurfacesOutcome(t *testing.T) {
	a, transport := newWorkerFixture(t)

	transport.EXPECT().
		AttachCompleted(gomock.Any(), gomock.Any()).
		Return(ports.CallResult{
			Outcome:  domain.OutcomeFailedRetryable,
			Attempts: 3,
			Err:      zerr.New("request timed out"),
		})

	err := a.Worker(context.Background(), transport, WorkerOptions{WorkerID: "w-1"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "attach failed")
}

func TestWorker_FailedCloseSurfacesOutcome(t *testing.T) {
	a, transport := newWorkerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport.EXPECT().
		AttachCompleted(gomock.Any(), gomock.Any()).
		Return(ports.CallResult{Outcome: domain.OutcomeSucceeded, Attempts: 1})
	transport.EXPECT().
		Close(gomock.Any(), "w-1").
		Return(ports.CallResult{
			Outcome:  domain.OutcomeFailedFatal,
			Attempts: 1,
			Err:      zerr.New("session already closed"),
		})

	err := a.Worker(ctx, transport, WorkerOptions{WorkerID: "w-1"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "close failed")
}
