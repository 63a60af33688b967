// Package replay implements the Dialog Replayer (C6): normalizing and
// validating one dialog, aligning its turn-pairs, constructing an Agent
// for it, and running its turn-pairs strictly sequentially.
package replay

import (
	"context"
	"fmt"
	"time"

	"goa.design/agentbench/agentapi"
	"goa.design/agentbench/dataset"
	"goa.design/agentbench/dialog"
	"goa.design/agentbench/executor"
	"goa.design/agentbench/observer"
	"goa.design/agentbench/orchestrator/progress"
	"goa.design/agentbench/trace"
)

// Options configures a replay run for one dialog.
type Options struct {
	RunID         string
	Deadline      time.Duration
	Heartbeat     time.Duration
	Retries       int
	AgentFactory  agentapi.Factory
	ProgressSink  progress.Sink
}

// Replay runs one dialog end to end (C6 steps 1-5) and returns its
// DialogTrace. It never returns an error itself: every failure mode is
// folded into the returned trace per §7's error taxonomy.
func Replay(ctx context.Context, raw dialog.Dialog, opts Options) trace.DialogTrace {
	d := dataset.Normalize(raw)
	emit := func(typ string, turnPairID int, detail map[string]any) {
		if opts.ProgressSink != nil {
			opts.ProgressSink.Emit(progress.NewEvent(typ, opts.RunID, d.DialogID, turnPairID, detail))
		}
	}

	base := trace.DialogTrace{
		TraceVersion: "v1",
		RunID:        opts.RunID,
		DialogID:     d.DialogID,
		DatasetIndex: d.DatasetIndex,
		ScenarioType: d.ScenarioType,
		Difficulty:   d.Difficulty,
		ProfileGT:    d.ProfileGT,
		Blueprint:    d.Blueprint,
		RawTurns:     d.Turns,
		SessionID:    d.DialogID,
		UserID:       d.DialogID,
	}

	valid, skipReason := dataset.Validate(d)
	if !valid {
		base.ValidDialog = false
		base.SkipReason = skipReason
		base.DialogStatus = trace.StatusSkipped
		return base
	}
	base.ValidDialog = true

	pairs := dialog.Align(d)

	emit(progress.DialogStarted, 0, nil)

	obs := observer.NewBus()
	agent, err := opts.AgentFactory(d.DialogID, obs)
	if err != nil {
		base.DialogError = fmt.Sprintf("create_agent_failed: %s", err.Error())
		base.DialogStatus = trace.StatusFailed
		emit(progress.DialogFailed, 0, map[string]any{"error": base.DialogError})
		return base
	}

	sessionID := d.DialogID
	userID := d.DialogID

	turns := make([]trace.TurnTrace, 0, len(pairs))
	for _, p := range pairs {
		emit(progress.TurnStarted, p.TurnPairID, nil)

		res := executor.Execute(ctx, agent, p, p.UserText, sessionID, userID,
			executor.Options{Deadline: opts.Deadline, Heartbeat: opts.Heartbeat, Retries: opts.Retries},
			func(event string) { emit(event, p.TurnPairID, nil) },
		)

		tt := buildTurnTrace(p, res, obs.GetTurnPayload(p.TurnPairID))
		turns = append(turns, tt)

		if tt.TurnStatus == trace.TurnTimeout {
			emit(progress.TurnTimeout, p.TurnPairID, map[string]any{"error": deref(tt.Error)})
		}
		emit(progress.TurnDone, p.TurnPairID, map[string]any{"status": tt.TurnStatus})
	}

	base.Turns = turns
	base.DialogStatus = trace.DeriveStatus(true, false, turns)
	if base.DialogStatus == trace.StatusOK || base.DialogStatus == trace.StatusPartial {
		emit(progress.DialogDone, 0, map[string]any{"status": base.DialogStatus})
	} else {
		emit(progress.DialogFailed, 0, map[string]any{"status": base.DialogStatus})
	}
	return base
}

func buildTurnTrace(p dialog.TurnPair, res executor.Result, bucket *observer.Bucket) trace.TurnTrace {
	tt := trace.TurnTrace{
		TurnPairID:        p.TurnPairID,
		UserTurnAbsIdx:    p.UserTurnAbsIdx,
		GTAssistantAbsIdx: p.GTAssistantAbsIdx,
		UserText:          p.UserText,
		GTAssistantText:   p.GTAssistantText,
		GTTurnTags:        p.GTTurnTags,
		PredAssistantText: res.PredText,
		LatencyMS:         res.LatencyMS,
	}

	switch res.Status {
	case "ok":
		tt.TurnStatus = trace.TurnOK
	default:
		if len(res.Error) >= len("turn_timeout:") && res.Error[:len("turn_timeout:")] == "turn_timeout:" {
			tt.TurnStatus = trace.TurnTimeout
		} else {
			tt.TurnStatus = trace.TurnError
		}
		e := res.Error
		tt.Error = &e
	}

	if bucket != nil {
		tt.Recall = bucketRecall(bucket)
		tt.Tools = bucketTools(bucket)
		tt.Compliance = bucketCompliance(bucket)
		if bucket.ProfileSnapshot != nil {
			tt.ProfileSnapshot = map[string]any{
				"risk_level":      bucket.ProfileSnapshot.RiskLevel,
				"horizon":         bucket.ProfileSnapshot.Horizon,
				"liquidity_need":  bucket.ProfileSnapshot.LiquidityNeed,
				"constraints":     bucket.ProfileSnapshot.Constraints,
				"preferences":     bucket.ProfileSnapshot.Preferences,
			}
		}
		if bucket.TurnEnd != nil && bucket.TurnEnd.LatencyMS != nil {
			tt.LatencyMS = *bucket.TurnEnd.LatencyMS
		}
	}
	return tt
}

func bucketRecall(b *observer.Bucket) *trace.Recall {
	if b.Recall == nil {
		return nil
	}
	items := make([]trace.RecallItem, 0, len(b.Recall.Values))
	r := &trace.Recall{
		ShortTermContext: b.Recall.SourceText,
		Items:            items,
	}
	return r
}

func bucketTools(b *observer.Bucket) []trace.ToolCallRecord {
	if len(b.Tools) == 0 {
		return nil
	}
	out := make([]trace.ToolCallRecord, 0, len(b.Tools))
	for _, tc := range b.Tools {
		out = append(out, trace.ToolCallRecord{ToolName: tc.Name})
	}
	return out
}

func bucketCompliance(b *observer.Bucket) *trace.Compliance {
	if b.Compliance == nil {
		return nil
	}
	violations := make([]trace.Violation, 0, len(b.Compliance.Hits))
	for _, h := range b.Compliance.Hits {
		violations = append(violations, trace.Violation{Detail: h})
	}
	return &trace.Compliance{
		IsCompliant: b.Compliance.Label == "compliant",
		Violations:  violations,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
