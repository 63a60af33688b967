// Package dialog holds the raw dialog data model and the turn alignment
// algorithm (C3) that pairs user utterances with the next assistant
// utterance in a conversation.
package dialog

// Turn is one entry in a dialog's raw turn list.
type Turn struct {
	Role     string         `json:"role"`
	Text     string         `json:"text"`
	TurnTags map[string]any `json:"turn_tags,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ProfileGT is the ground-truth user profile attached to a dialog.
type ProfileGT struct {
	RiskLevelGT      string   `json:"risk_level_gt,omitempty"`
	HorizonGT        string   `json:"horizon_gt,omitempty"`
	LiquidityNeedGT  string   `json:"liquidity_need_gt,omitempty"`
	ConstraintsGT    []string `json:"constraints_gt,omitempty"`
	PreferencesGT    []string `json:"preferences_gt,omitempty"`
}

// Blueprint carries the subset of the dialog's blueprint mapping the harness
// consumes.
type Blueprint struct {
	ForbiddenList []string `json:"forbidden_list,omitempty"`
}

// Dialog is one conversation as ingested from the dataset, after C1/C2
// normalization.
type Dialog struct {
	// DatasetIndex is the 1-based line number in the dataset file.
	DatasetIndex int
	// DialogID is the dialog identifier; synthesized as "dialog_<index>" when absent.
	DialogID string
	// Turns is the raw, ordered turn sequence.
	Turns []Turn
	// ProfileGT is the ground-truth profile; zero-valued when absent.
	ProfileGT ProfileGT
	// HasProfileGT distinguishes an absent profile_gt mapping from one that
	// was present but empty; C2's missing_profile_gt check uses this.
	HasProfileGT bool
	// Blueprint carries the forbidden-phrase list.
	Blueprint Blueprint
	// ScenarioType and Difficulty are opaque passthrough strings.
	ScenarioType string
	Difficulty   string

	// InvalidJSONError is set when C1 could not decode this line; its
	// presence forces C2 to classify the dialog as skip_reason=invalid_json.
	InvalidJSONError string
}

// GTTurnTags is the ground-truth tag bundle attached to the assistant side of
// a turn-pair.
type GTTurnTags struct {
	MemoryRequiredKeysGT       []string `json:"memory_required_keys_gt,omitempty"`
	RiskDisclosureRequiredGT   []string `json:"risk_disclosure_required_gt,omitempty"`
	ExplainabilityRubricGT     []string `json:"explainability_rubric_gt,omitempty"`
	ComplianceLabelGT          string   `json:"compliance_label_gt,omitempty"`
}

// TurnPair pairs a user utterance with the next assistant utterance that
// follows it, as produced by Align (C3).
type TurnPair struct {
	// TurnPairID is 1-based within its dialog, in emission order.
	TurnPairID int
	// UserTurnAbsIdx and GTAssistantAbsIdx are 0-based indices into Dialog.Turns.
	UserTurnAbsIdx     int
	GTAssistantAbsIdx  int
	UserText           string
	GTAssistantText    string
	// GTTurnTags is nil when the assistant turn carried no turn_tags mapping.
	GTTurnTags *GTTurnTags
}
