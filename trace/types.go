// Package trace defines the output data contracts (TurnTrace, DialogTrace)
// that the Dialog Replayer (C6) produces and the Turn-Eval Builder (C8) and
// Output Writer (C10) consume.
package trace

import "goa.design/agentbench/dialog"

// Dialog-level statuses.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Turn-level statuses.
const (
	TurnOK      = "ok"
	TurnTimeout = "timeout"
	TurnError   = "error"
)

// Recall is the observer's context-recall snapshot for one turn.
type Recall struct {
	ShortTermContext string       `json:"short_term_context,omitempty"`
	ProfileContext   string       `json:"profile_context,omitempty"`
	Items            []RecallItem `json:"items,omitempty"`
}

// RecallItem is one ranked long-term-memory item surfaced by the recall step.
type RecallItem struct {
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
	Source  string  `json:"source,omitempty"`
}

// ToolCallRecord is one observed tool invocation.
type ToolCallRecord struct {
	ToolName     string `json:"tool_name"`
	Args         string `json:"args,omitempty"`
	ResultExcerpt string `json:"result_excerpt,omitempty"`
	LatencyMS    int64  `json:"latency_ms,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Violation is one compliance-guard finding.
type Violation struct {
	Type     string `json:"type,omitempty"`
	Severity string `json:"severity,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Compliance is the observer's compliance-guard verdict for one turn.
type Compliance struct {
	NeedsModification    bool        `json:"needs_modification"`
	IsCompliant          bool        `json:"is_compliant"`
	Violations           []Violation `json:"violations,omitempty"`
	RiskDisclaimerAdded  bool        `json:"risk_disclaimer_added"`
	SuitabilityWarning   bool        `json:"suitability_warning"`
}

// TurnTrace mirrors a TurnPair and adds everything observed while
// executing it.
type TurnTrace struct {
	TurnPairID        int                 `json:"turn_pair_id"`
	UserTurnAbsIdx    int                 `json:"user_turn_abs_idx"`
	GTAssistantAbsIdx int                 `json:"gt_assistant_abs_idx"`
	UserText          string              `json:"user_text"`
	GTAssistantText   string              `json:"gt_assistant_text"`
	GTTurnTags        *dialog.GTTurnTags  `json:"gt_turn_tags,omitempty"`

	PredAssistantText string  `json:"pred_assistant_text"`
	LatencyMS         int64   `json:"latency_ms"`
	TurnStatus        string  `json:"turn_status"`
	Error             *string `json:"error,omitempty"`

	Recall          *Recall         `json:"recall,omitempty"`
	Tools           []ToolCallRecord `json:"tools,omitempty"`
	Compliance      *Compliance     `json:"compliance,omitempty"`
	ProfileSnapshot map[string]any  `json:"profile_snapshot,omitempty"`
}

// DialogTrace is the per-dialog output record.
type DialogTrace struct {
	TraceVersion string `json:"trace_version"`
	RunID        string `json:"run_id"`
	DialogID     string `json:"dialog_id"`
	DatasetIndex int    `json:"dataset_index"`
	ScenarioType string `json:"scenario_type,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`

	DialogStatus string `json:"dialog_status"`
	ValidDialog  bool   `json:"valid_dialog"`
	SkipReason   string `json:"skip_reason,omitempty"`

	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`

	Turns       []TurnTrace `json:"turns"`
	DialogError string      `json:"dialog_error,omitempty"`

	ProfileGT dialog.ProfileGT `json:"profile_gt"`
	Blueprint dialog.Blueprint `json:"blueprint"`
	RawTurns  []dialog.Turn    `json:"raw_turns"`
}

// DeriveStatus computes dialog_status per the §3 derivation rule: invalid
// dialogs are skipped; agent-construction failure before any turn is
// failed; any non-ok turn makes the dialog partial; otherwise ok.
func DeriveStatus(validDialog bool, agentConstructionFailed bool, turns []TurnTrace) string {
	if !validDialog {
		return StatusSkipped
	}
	if agentConstructionFailed {
		return StatusFailed
	}
	for _, t := range turns {
		if t.TurnStatus != TurnOK {
			return StatusPartial
		}
	}
	return StatusOK
}
