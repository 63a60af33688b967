// Package turneval implements the Turn-Eval Builder (C8): deriving
// per-turn and per-dialog evaluation rows from a DialogTrace that the
// metric aggregators (C9) consume.
package turneval

import (
	"strings"

	"goa.design/agentbench/dialog"
	"goa.design/agentbench/trace"
)

// TurnEvalRow is one derived, immutable evaluation record for one turn.
type TurnEvalRow struct {
	DialogID   string
	TurnPairID int

	EligibleM1 bool
	EligibleM3 bool
	EligibleM4 bool
	EligibleM5 bool

	RequiredKeysRaw []string
	ResolvedKeys    []ResolvedKey
	KeyHitFlags     []int
	KeyHitSources   [][]string
	M1SourceHits    map[string]int

	ConstraintContradiction int

	RiskRequiredTags []string
	RiskPredTags     []string
	RiskTagHits      int

	ForbiddenHits       []string
	PredComplianceLabel string
	GTComplianceLabel   string

	RubricRequired []string
	RubricHitItems []string
	JudgeScore1To5 *float64
}

// ProfileEvalRow is the one M2 row per valid dialog with a non-empty
// profile_gt.
type ProfileEvalRow struct {
	DialogID string
	Eligible bool

	PredRiskLevel      string
	PredHorizon        string
	PredLiquidityNeed  string
	PredConstraints    []string
	PredPreferences    []string
	// PredConcatText is every turn's pred_assistant_text concatenated, used
	// as the fallback source for the keyword-heuristic resolution of a
	// profile field the snapshot left unknown.
	PredConcatText string

	GTRiskLevel     string
	GTHorizon       string
	GTLiquidityNeed string
	GTConstraints   []string
	GTPreferences   []string
}

// BuildRows derives one TurnEvalRow per TurnTrace in dt.
func BuildRows(dt trace.DialogTrace) []TurnEvalRow {
	pairs := derivePairs(dt.Turns)
	rows := make([]TurnEvalRow, 0, len(dt.Turns))
	for _, tt := range dt.Turns {
		rows = append(rows, buildRow(dt, tt, pairs))
	}
	return rows
}

func derivePairs(turns []trace.TurnTrace) []dialog.TurnPair {
	out := make([]dialog.TurnPair, 0, len(turns))
	for _, t := range turns {
		out = append(out, dialog.TurnPair{
			TurnPairID:        t.TurnPairID,
			UserTurnAbsIdx:    t.UserTurnAbsIdx,
			GTAssistantAbsIdx: t.GTAssistantAbsIdx,
			UserText:          t.UserText,
			GTAssistantText:   t.GTAssistantText,
			GTTurnTags:        t.GTTurnTags,
		})
	}
	return out
}

func buildRow(dt trace.DialogTrace, tt trace.TurnTrace, pairs []dialog.TurnPair) TurnEvalRow {
	row := TurnEvalRow{DialogID: dt.DialogID, TurnPairID: tt.TurnPairID}
	okTurn := tt.TurnStatus == trace.TurnOK
	row.EligibleM4 = okTurn

	var gtTags dialog.GTTurnTags
	if tt.GTTurnTags != nil {
		gtTags = *tt.GTTurnTags
	}

	// M1: required-memory keys.
	row.RequiredKeysRaw = gtTags.MemoryRequiredKeysGT
	shortTerm, longTerm, profileCtx := recallTexts(tt.Recall)
	for _, key := range row.RequiredKeysRaw {
		rk := ResolveKey(key, dt.ProfileGT, pairs, dt.RawTurns)
		row.ResolvedKeys = append(row.ResolvedKeys, rk)
		if !rk.Resolvable {
			continue
		}
		sources := KeyHit(rk.TargetText, shortTerm, longTerm, profileCtx)
		hit := 0
		if len(sources) > 0 {
			hit = 1
		}
		row.KeyHitFlags = append(row.KeyHitFlags, hit)
		row.KeyHitSources = append(row.KeyHitSources, sources)
		if row.M1SourceHits == nil {
			row.M1SourceHits = map[string]int{}
		}
		for _, s := range sources {
			row.M1SourceHits[s]++
		}
	}
	row.EligibleM1 = okTurn && len(row.KeyHitFlags) > 0
	if okTurn {
		row.ConstraintContradiction = ConstraintContradiction(dt.ProfileGT.ConstraintsGT, tt.PredAssistantText)
	}

	// M3: risk tags.
	row.RiskRequiredTags = gtTags.RiskDisclosureRequiredGT
	if okTurn && len(row.RiskRequiredTags) > 0 {
		row.EligibleM3 = true
		row.RiskPredTags = PredictedRiskTags(tt.PredAssistantText)
		row.RiskRequiredTags, row.RiskTagHits = RiskTagHits(row.RiskRequiredTags, row.RiskPredTags)
	}

	// M4: compliance.
	if okTurn {
		row.ForbiddenHits = ForbiddenHits(dt.Blueprint.ForbiddenList, tt.PredAssistantText)
		var violations []trace.Violation
		if tt.Compliance != nil {
			violations = tt.Compliance.Violations
		}
		row.PredComplianceLabel = PredComplianceLabel(row.ForbiddenHits, violations)
		row.GTComplianceLabel = GTComplianceLabel(gtTags.ComplianceLabelGT)
	}

	// M5: explainability rubric.
	row.RubricRequired = gtTags.ExplainabilityRubricGT
	if okTurn && len(row.RubricRequired) > 0 {
		row.EligibleM5 = true
		row.RubricHitItems = RubricHits(row.RubricRequired, tt.PredAssistantText)
		row.JudgeScore1To5 = JudgeScore(len(row.RubricHitItems), len(row.RubricRequired))
	}

	return row
}

func recallTexts(r *trace.Recall) (shortTerm, longTerm, profileCtx string) {
	if r == nil {
		return "", "", ""
	}
	var items []string
	for _, it := range r.Items {
		items = append(items, it.Content)
	}
	return r.ShortTermContext, strings.Join(items, "\n"), r.ProfileContext
}

// BuildProfileRow derives the M2 row for one valid dialog, or
// (ProfileEvalRow{}, false) when the dialog is ineligible (empty
// profile_gt). The predicted profile is taken from the latest non-nil
// profile_snapshot across the dialog's turns.
func BuildProfileRow(dt trace.DialogTrace) (ProfileEvalRow, bool) {
	if !dt.ValidDialog {
		return ProfileEvalRow{}, false
	}
	if isEmptyProfile(dt.ProfileGT) {
		return ProfileEvalRow{}, false
	}

	row := ProfileEvalRow{
		DialogID:        dt.DialogID,
		Eligible:        true,
		GTRiskLevel:     dt.ProfileGT.RiskLevelGT,
		GTHorizon:       dt.ProfileGT.HorizonGT,
		GTLiquidityNeed: dt.ProfileGT.LiquidityNeedGT,
		GTConstraints:   dt.ProfileGT.ConstraintsGT,
		GTPreferences:   dt.ProfileGT.PreferencesGT,
	}

	var latest map[string]any
	var texts []string
	for _, t := range dt.Turns {
		if t.ProfileSnapshot != nil {
			latest = t.ProfileSnapshot
		}
		if t.PredAssistantText != "" {
			texts = append(texts, t.PredAssistantText)
		}
	}
	row.PredConcatText = strings.Join(texts, "\n")
	if latest != nil {
		row.PredRiskLevel, _ = latest["risk_level"].(string)
		row.PredHorizon, _ = latest["horizon"].(string)
		row.PredLiquidityNeed, _ = latest["liquidity_need"].(string)
		row.PredConstraints = asStringSlice(latest["constraints"])
		row.PredPreferences = asStringSlice(latest["preferences"])
	}
	return row, true
}

func isEmptyProfile(p dialog.ProfileGT) bool {
	return p.RiskLevelGT == "" && p.HorizonGT == "" && p.LiquidityNeedGT == "" &&
		len(p.ConstraintsGT) == 0 && len(p.PreferencesGT) == 0
}

func asStringSlice(v any) []string {
	raw, ok := v.([]string)
	if ok {
		return raw
	}
	rawAny, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rawAny))
	for _, e := range rawAny {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
