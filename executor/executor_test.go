package executor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goa.design/agentbench/dialog"
)

type fakeAgent struct {
	delay   time.Duration
	err     error
	text    string
	calls   int32
	onCall  func(ctx context.Context)
}

func (f *fakeAgent) HandleTurn(ctx context.Context, userText, sessionID, userID string, tp *dialog.TurnPair) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.onCall != nil {
		f.onCall(ctx)
	}
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestExecuteSuccessOnFirstAttempt(t *testing.T) {
	a := &fakeAgent{text: "hello"}
	res := Execute(context.Background(), a, dialog.TurnPair{TurnPairID: 1}, "hi", "s1", "u1", Options{}, nil)
	require.Equal(t, "ok", res.Status)
	require.Equal(t, "hello", res.PredText)
	require.Equal(t, 1, res.AttemptsUsed)
}

func TestExecuteTimeoutProducesTurnTimeoutError(t *testing.T) {
	a := &fakeAgent{delay: 500 * time.Millisecond, text: "too slow"}
	res := Execute(context.Background(), a, dialog.TurnPair{TurnPairID: 1}, "hi", "s1", "u1", Options{Deadline: 100 * time.Millisecond}, nil)
	require.Equal(t, "error", res.Status)
	require.Contains(t, res.Error, "turn_timeout: exceeded")
}

func TestExecuteRetriesOnRetryableError(t *testing.T) {
	a := &fakeAgent{err: errors.New("Request timed out.")}
	res := Execute(context.Background(), a, dialog.TurnPair{TurnPairID: 1}, "hi", "s1", "u1", Options{Retries: 2}, nil)
	require.Equal(t, "error", res.Status)
	require.Equal(t, 3, res.AttemptsUsed)
	require.EqualValues(t, 3, a.calls)
}

func TestExecuteDoesNotRetryNonRetryableError(t *testing.T) {
	a := &fakeAgent{err: errors.New("some unrelated failure")}
	res := Execute(context.Background(), a, dialog.TurnPair{TurnPairID: 1}, "hi", "s1", "u1", Options{Retries: 3}, nil)
	require.Equal(t, "error", res.Status)
	require.Equal(t, 1, res.AttemptsUsed)
	require.EqualValues(t, 1, a.calls)
}

func TestExecuteEmitsHeartbeatsWhileRunning(t *testing.T) {
	a := &fakeAgent{delay: 350 * time.Millisecond, text: "done"}
	var beats int32
	progress := func(event string) {
		if event == "turn_heartbeat" {
			atomic.AddInt32(&beats, 1)
		}
	}
	res := Execute(context.Background(), a, dialog.TurnPair{TurnPairID: 1}, "hi", "s1", "u1", Options{Heartbeat: 100 * time.Millisecond}, progress)
	require.Equal(t, "ok", res.Status)
	require.GreaterOrEqual(t, atomic.LoadInt32(&beats), int32(2))
}

func TestExecutePropagatesAgentErrorMessage(t *testing.T) {
	a := &fakeAgent{err: errors.New("boom: invalid schema")}
	res := Execute(context.Background(), a, dialog.TurnPair{TurnPairID: 1}, "hi", "s1", "u1", Options{}, nil)
	require.Equal(t, "error", res.Status)
	require.Equal(t, "boom: invalid schema", res.Error)
}
