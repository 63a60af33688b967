// Package executor implements the Turn Executor (C5): running one agent
// turn under a deadline, heartbeat, and bounded retry policy on a
// dedicated single-worker execution context so the orchestrator's own
// goroutine stays responsive.
package executor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"goa.design/agentbench/agentapi"
	"goa.design/agentbench/dialog"
)

// Options configures one turn execution.
type Options struct {
	// Deadline is D; 0 disables the per-attempt timeout.
	Deadline time.Duration
	// Heartbeat is H; 0 disables heartbeat emission.
	Heartbeat time.Duration
	// Retries is R, the number of retries allowed beyond the first attempt.
	Retries int
}

// Result is what a turn execution produces.
type Result struct {
	PredText     string
	Status       string // "ok" or "error"
	Error        string
	LatencyMS    int64
	AttemptsUsed int
}

// ProgressFunc receives out-of-band progress notifications, currently only
// turn_heartbeat, emitted while a turn is still running.
type ProgressFunc func(event string)

type attemptOutcome struct {
	text string
	err  error
}

// Execute runs agent.HandleTurn for turnPair up to opts.Retries+1 times,
// per the algorithm in §4.5: each attempt gets its own deadline clock, a
// polling wait of granularity min(1s, D-elapsed, time to the next
// heartbeat), and heartbeat emission at each H-multiple crossed. A
// retryable error is followed by a 1s pause before the next attempt.
// Non-retryable errors, and retryable errors once attempts are exhausted,
// end the loop immediately.
func Execute(ctx context.Context, agent agentapi.Agent, turnPair dialog.TurnPair, userText, sessionID, userID string, opts Options, progress ProgressFunc) Result {
	attempts := 0
	var last Result

	for {
		attempts++
		last = runAttempt(ctx, agent, turnPair, userText, sessionID, userID, opts, progress)
		last.AttemptsUsed = attempts

		if last.Status == "ok" {
			return last
		}
		if attempts > opts.Retries {
			return last
		}
		if !isRetryable(last.Error) {
			return last
		}
		// A fresh limiter with its one token spent makes Wait block for a
		// full second before the retry.
		backoff := rate.NewLimiter(rate.Every(time.Second), 1)
		backoff.Allow()
		_ = backoff.Wait(context.Background())
	}
}

// runAttempt performs a single attempt: it dispatches HandleTurn on a
// dedicated goroutine and polls its result channel, never joining the
// goroutine past a timeout so a cancelled/detached attempt cannot block
// the caller.
func runAttempt(ctx context.Context, agent agentapi.Agent, turnPair dialog.TurnPair, userText, sessionID, userID string, opts Options, progress ProgressFunc) Result {
	start := time.Now()
	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan attemptOutcome, 1)
	go func() {
		tp := turnPair
		text, err := agent.HandleTurn(attemptCtx, userText, sessionID, userID, &tp)
		done <- attemptOutcome{text: text, err: err}
	}()

	nextHeartbeat := opts.Heartbeat
	for {
		elapsed := time.Since(start)

		wait := time.Second
		if opts.Deadline > 0 {
			remaining := opts.Deadline - elapsed
			if remaining < wait {
				wait = remaining
			}
		}
		if opts.Heartbeat > 0 {
			if untilBeat := nextHeartbeat - elapsed; untilBeat < wait {
				wait = untilBeat
			}
		}
		if wait < 0 {
			wait = 0
		}

		select {
		case out := <-done:
			latency := time.Since(start).Milliseconds()
			if out.err != nil {
				return Result{Status: "error", Error: out.err.Error(), LatencyMS: latency}
			}
			return Result{Status: "ok", PredText: out.text, LatencyMS: latency}

		case <-time.After(wait):
			elapsed = time.Since(start)
			if opts.Deadline > 0 && elapsed >= opts.Deadline {
				cancel()
				return Result{
					Status:    "error",
					Error:     fmt.Sprintf("turn_timeout: exceeded %ds", int(opts.Deadline.Seconds())),
					LatencyMS: elapsed.Milliseconds(),
				}
			}
			if opts.Heartbeat > 0 {
				for nextHeartbeat > 0 && elapsed >= nextHeartbeat {
					if progress != nil {
						progress("turn_heartbeat")
					}
					nextHeartbeat += opts.Heartbeat
				}
			}
		}
	}
}
