// Package orchestrator implements the Run Orchestrator (C7): it dispatches
// dialogs across a bounded worker pool, checkpoints completed DialogTraces
// under a lock, and resumes runs by dialog id.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"goa.design/agentbench/dialog"
	"goa.design/agentbench/orchestrator/lock"
	"goa.design/agentbench/orchestrator/progress"
	"goa.design/agentbench/orchestrator/store"
	"goa.design/agentbench/replay"
	"goa.design/agentbench/telemetry"
	"goa.design/agentbench/trace"
)

// Options configures a full run.
type Options struct {
	RunID         string
	WorkersDialog int
	Replay        replay.Options // RunID is overwritten per call; Deadline/Heartbeat/Retries/AgentFactory pass through
	Store         store.TraceStore
	Lock          lock.Lock
	ProgressSink  progress.Sink
	Logger        telemetry.Logger
}

// Run executes the full dataset through the Dialog Replayer, respecting an
// existing checkpoint for resume, and returns the final traces ordered by
// ascending dataset_index (the ordering C8/C9 consume).
func Run(ctx context.Context, dialogs []dialog.Dialog, opts Options) ([]trace.DialogTrace, error) {
	if opts.WorkersDialog <= 0 {
		opts.WorkersDialog = 1
	}
	if opts.Lock == nil {
		opts.Lock = lock.NewLocal()
	}

	known, err := opts.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	emit := func(typ, dialogID string, detail map[string]any) {
		if opts.ProgressSink != nil {
			opts.ProgressSink.Emit(progress.NewEvent(typ, opts.RunID, dialogID, 0, detail))
		}
	}
	emit(progress.RunStarted, "", map[string]any{"dialog_count": len(dialogs)})

	results := make(map[string]trace.DialogTrace, len(dialogs))
	var mu sync.Mutex
	for id, tr := range known {
		results[id] = tr
	}

	jobs := make(chan dialog.Dialog, len(dialogs))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for d := range jobs {
			tr := runOneDialog(ctx, d, opts, emit)

			opts.Lock.Lock()
			if err := opts.Store.Append(tr); err != nil && opts.Logger != nil {
				opts.Logger.Warn(ctx, "orchestrator: checkpoint append failed", "dialog_id", tr.DialogID, "error", err.Error())
			}
			opts.Lock.Unlock()

			mu.Lock()
			results[tr.DialogID] = tr
			mu.Unlock()
		}
	}

	for i := 0; i < opts.WorkersDialog; i++ {
		wg.Add(1)
		go worker()
	}

	for _, d := range dialogs {
		id := dialogID(d)
		if _, ok := known[id]; ok {
			emit(progress.DialogSkippedResume, id, nil)
			continue
		}
		jobs <- d
	}
	close(jobs)
	wg.Wait()

	emit(progress.RunFinished, "", nil)
	return orderByDatasetIndex(dialogs, results), nil
}

// runOneDialog runs the Dialog Replayer for one dialog, recovering any
// panic the replayer or its agent leaks into a synthesized failed
// DialogTrace per §4.7's unhandled-exception rule. The orchestrator itself
// must stay healthy regardless of any one dialog's outcome.
func runOneDialog(ctx context.Context, d dialog.Dialog, opts Options, emit func(string, string, map[string]any)) (tr trace.DialogTrace) {
	id := dialogID(d)
	defer func() {
		if r := recover(); r != nil {
			tr = trace.DialogTrace{
				TraceVersion: "v1",
				RunID:        opts.RunID,
				DialogID:     id,
				DatasetIndex: d.DatasetIndex,
				ScenarioType: d.ScenarioType,
				Difficulty:   d.Difficulty,
				ValidDialog:  true,
				DialogStatus: trace.StatusFailed,
				DialogError:  fmt.Sprintf("unhandled_dialog_exception: %T: %v", r, r),
				ProfileGT:    d.ProfileGT,
				Blueprint:    d.Blueprint,
				RawTurns:     d.Turns,
			}
			emit(progress.DialogFailed, id, map[string]any{"error": tr.DialogError})
		}
	}()

	ropts := opts.Replay
	ropts.RunID = opts.RunID
	ropts.ProgressSink = opts.ProgressSink
	return replay.Replay(ctx, d, ropts)
}

func dialogID(d dialog.Dialog) string {
	if d.DialogID != "" {
		return d.DialogID
	}
	return fmt.Sprintf("dialog_%d", d.DatasetIndex)
}

func orderByDatasetIndex(dialogs []dialog.Dialog, results map[string]trace.DialogTrace) []trace.DialogTrace {
	out := make([]trace.DialogTrace, 0, len(dialogs))
	seen := make(map[string]bool, len(dialogs))
	for _, d := range dialogs {
		id := dialogID(d)
		if seen[id] {
			continue
		}
		seen[id] = true
		if tr, ok := results[id]; ok {
			out = append(out, tr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DatasetIndex < out[j].DatasetIndex })
	return out
}
