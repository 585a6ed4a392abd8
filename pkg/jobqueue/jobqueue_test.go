package jobqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "restaurant-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// waitForState опрашивает состояние задачи, пока оно не станет терминальным.
func waitForState(t *testing.T, q *Queue, jobID string, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state, err := q.Status(jobID)
		require.NoError(t, err)
		if state == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	state, _ := q.Status(jobID)
	t.Fatalf("задача %s не перешла в состояние %s, текущее: %s", jobID, want, state)
}

func TestQueue_JobLifecycle(t *testing.T) {
	q := New(zap.NewNop(), 4)
	defer q.Shutdown()

	received := make(chan interface{}, 1)
	q.RegisterHandler("test_job", func(ctx context.Context, jobID string, payload interface{}) error {
		received <- payload
		return nil
	})
	q.Start(1)

	jobID, err := q.Enqueue("test_job", "payload-1")
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	waitForState(t, q, jobID, StateFinished)
	assert.Equal(t, "payload-1", <-received)
}

func TestQueue_HandlerErrorMarksJobFailed(t *testing.T) {
	q := New(zap.NewNop(), 4)
	defer q.Shutdown()

	q.RegisterHandler("failing_job", func(ctx context.Context, jobID string, payload interface{}) error {
		return errors.New("что-то пошло не так")
	})
	q.Start(1)

	jobID, err := q.Enqueue("failing_job", nil)
	require.NoError(t, err)

	waitForState(t, q, jobID, StateFailed)
}

func TestQueue_HandlerPanicMarksJobFailed(t *testing.T) {
	q := New(zap.NewNop(), 4)
	defer q.Shutdown()

	q.RegisterHandler("panicking_job", func(ctx context.Context, jobID string, payload interface{}) error {
		panic("необработанная паника")
	})
	q.Start(1)

	jobID, err := q.Enqueue("panicking_job", nil)
	require.NoError(t, err)

	waitForState(t, q, jobID, StateFailed)
}

func TestQueue_EnqueueUnknownJobType(t *testing.T) {
	q := New(zap.NewNop(), 4)
	defer q.Shutdown()

	_, err := q.Enqueue("unknown_job", nil)
	assert.Error(t, err)
}

func TestQueue_StatusUnknownJob(t *testing.T) {
	q := New(zap.NewNop(), 4)
	defer q.Shutdown()

	_, err := q.Status("нет-такой-задачи")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestQueue_MultipleWorkers(t *testing.T) {
	q := New(zap.NewNop(), 16)
	defer q.Shutdown()

	done := make(chan string, 8)
	q.RegisterHandler("parallel_job", func(ctx context.Context, jobID string, payload interface{}) error {
		done <- jobID
		return nil
	})
	q.Start(4)

	ids := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		id, err := q.Enqueue("parallel_job", i)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for _, id := range ids {
		waitForState(t, q, id, StateFinished)
	}
	assert.Len(t, done, 8)
}

func TestQueue_TerminalStateEvictedAfterRetention(t *testing.T) {
	q := New(zap.NewNop(), 4)
	defer q.Shutdown()
	q.retention = 20 * time.Millisecond

	q.RegisterHandler("short_job", func(ctx context.Context, jobID string, payload interface{}) error {
		return nil
	})
	q.Start(1)

	jobID, err := q.Enqueue("short_job", nil)
	require.NoError(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, statusErr := q.Status(jobID); errors.Is(statusErr, apperrors.ErrJobNotFound) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("состояние задачи %s не было выселено", jobID)
}
