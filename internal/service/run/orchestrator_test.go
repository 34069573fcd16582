package run

import (
	"context"
	"testing"
	"time"

	"QHSEAssistant/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOrchestrator(stub *ai.StubClient, interval, deadline time.Duration) *Orchestrator {
	return New(stub, interval, deadline, zap.NewNop().Sugar())
}

func TestAwaitPollsUntilCompleted(t *testing.T) {
	stub := ai.NewStubClient()
	stub.Statuses = []ai.RunStatus{ai.RunInProgress, ai.RunInProgress, ai.RunCompleted}
	o := newTestOrchestrator(stub, 5*time.Millisecond, time.Second)

	start := time.Now()
	err := o.Await(context.Background(), "th_1")
	require.NoError(t, err)

	// Три опроса и минимум два ожидания интервала между ними.
	assert.Equal(t, 3, stub.PollCalls)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, 1, stub.RunCalls)
}

func TestAwaitTerminalFailureShortCircuits(t *testing.T) {
	stub := ai.NewStubClient()
	stub.Statuses = []ai.RunStatus{ai.RunFailed}
	o := newTestOrchestrator(stub, 100*time.Millisecond, time.Second)

	start := time.Now()
	err := o.Await(context.Background(), "th_1")

	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, ai.RunFailed, failed.Status)
	assert.Equal(t, 1, stub.PollCalls)
	// Выход до первого ожидания интервала.
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAwaitCancelledAndExpiredAreFailures(t *testing.T) {
	for _, status := range []ai.RunStatus{ai.RunCancelled, ai.RunExpired, ai.RunIncomplete} {
		stub := ai.NewStubClient()
		stub.Statuses = []ai.RunStatus{status}
		o := newTestOrchestrator(stub, 10*time.Millisecond, time.Second)

		err := o.Await(context.Background(), "th_1")
		var failed *FailedError
		require.ErrorAs(t, err, &failed, "status=%s", status)
		assert.Equal(t, status, failed.Status)
	}
}

func TestAwaitTimesOutAtDeadline(t *testing.T) {
	stub := ai.NewStubClient()
	stub.Statuses = []ai.RunStatus{ai.RunInProgress}
	o := newTestOrchestrator(stub, 2*time.Millisecond, 30*time.Millisecond)

	start := time.Now()
	err := o.Await(context.Background(), "th_1")
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrTimeout)
	// Не раньше дедлайна и без неограниченного опоздания.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestAwaitAbandonsOnContextCancel(t *testing.T) {
	stub := ai.NewStubClient()
	stub.Statuses = []ai.RunStatus{ai.RunInProgress}
	o := newTestOrchestrator(stub, 50*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := o.Await(ctx, "th_1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestAwaitPropagatesSubmitError(t *testing.T) {
	stub := ai.NewStubClient()
	stub.RunErr = &ai.UpstreamError{Op: "start run", Err: context.DeadlineExceeded}
	o := newTestOrchestrator(stub, time.Millisecond, time.Second)

	err := o.Await(context.Background(), "th_1")
	var upstream *ai.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 0, stub.PollCalls)
}
