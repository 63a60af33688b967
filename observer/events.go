// Package observer implements the per-dialog event sink (C4) that an Agent
// uses to surface its internal recall/tool/compliance state back to the
// harness without the harness reaching into the agent's control flow.
package observer

// EventName is the closed set of event names an Agent may emit.
type EventName string

const (
	EventTurnStart        EventName = "turn_start"
	EventRecallDone       EventName = "recall_done"
	EventToolCalled       EventName = "tool_called"
	EventComplianceDone   EventName = "compliance_done"
	EventProfileSnapshot  EventName = "profile_snapshot"
	EventTurnEnd          EventName = "turn_end"
)

// RecallSnapshot is the payload of a recall_done event; it replaces the
// bucket's recall field whenever emitted.
type RecallSnapshot struct {
	Keys       []string `json:"keys,omitempty"`
	Values     map[string]any `json:"values,omitempty"`
	SourceText string   `json:"source_text,omitempty"`
}

// ToolCall is one entry appended to the bucket's tools list in emission order.
type ToolCall struct {
	Name   string         `json:"name"`
	Args   map[string]any `json:"args,omitempty"`
	Result any            `json:"result,omitempty"`
}

// ComplianceVerdict is the payload of a compliance_done event; it replaces
// the bucket's compliance field whenever emitted.
type ComplianceVerdict struct {
	Label  string   `json:"label,omitempty"`
	Hits   []string `json:"hits,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// ProfileSnapshot is the payload of a profile_snapshot event; it replaces
// the bucket's profile_snapshot field whenever emitted.
type ProfileSnapshot struct {
	RiskLevel     string   `json:"risk_level,omitempty"`
	Horizon       string   `json:"horizon,omitempty"`
	LiquidityNeed string   `json:"liquidity_need,omitempty"`
	Constraints   []string `json:"constraints,omitempty"`
	Preferences   []string `json:"preferences,omitempty"`
}

// TurnEnd is the payload of a turn_end event. LatencyMS, when set (non-nil),
// overrides the Turn Executor's measured wall latency for this turn because
// the agent owns the authoritative timing.
type TurnEnd struct {
	LatencyMS    *int64 `json:"latency_ms,omitempty"`
	FinalContent string `json:"final_content,omitempty"`
}

// Bucket accumulates everything observed for a single turn-pair.
type Bucket struct {
	TurnPairID       int
	Query            string
	Recall           *RecallSnapshot
	Tools            []ToolCall
	Compliance       *ComplianceVerdict
	ProfileSnapshot  *ProfileSnapshot
	TurnEnd          *TurnEnd
}

func (b *Bucket) clone() *Bucket {
	out := &Bucket{
		TurnPairID: b.TurnPairID,
		Query:      b.Query,
	}
	if b.Recall != nil {
		r := *b.Recall
		r.Keys = append([]string(nil), b.Recall.Keys...)
		if b.Recall.Values != nil {
			r.Values = make(map[string]any, len(b.Recall.Values))
			for k, v := range b.Recall.Values {
				r.Values[k] = v
			}
		}
		out.Recall = &r
	}
	if b.Tools != nil {
		out.Tools = make([]ToolCall, len(b.Tools))
		copy(out.Tools, b.Tools)
	}
	if b.Compliance != nil {
		c := *b.Compliance
		c.Hits = append([]string(nil), b.Compliance.Hits...)
		out.Compliance = &c
	}
	if b.ProfileSnapshot != nil {
		p := *b.ProfileSnapshot
		p.Constraints = append([]string(nil), b.ProfileSnapshot.Constraints...)
		p.Preferences = append([]string(nil), b.ProfileSnapshot.Preferences...)
		out.ProfileSnapshot = &p
	}
	if b.TurnEnd != nil {
		e := *b.TurnEnd
		if b.TurnEnd.LatencyMS != nil {
			l := *b.TurnEnd.LatencyMS
			e.LatencyMS = &l
		}
		out.TurnEnd = &e
	}
	return out
}
