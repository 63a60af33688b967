package dialog

// Align scans a dialog's raw turn list in order and produces the ordered
// turn-pair sequence used by the rest of the harness (C3).
//
// Whenever a user turn is found, the next assistant turn becomes its partner;
// any number of turns with another role may be skipped in between. A
// trailing user turn with no following assistant turn is dropped. The
// returned sequence is finite and is built in full before being returned —
// callers must not mutate it and re-Align expecting incremental behavior.
func Align(d Dialog) []TurnPair {
	var pairs []TurnPair
	nextID := 1
	for i, t := range d.Turns {
		if t.Role != RoleUser {
			continue
		}
		for j := i + 1; j < len(d.Turns); j++ {
			if d.Turns[j].Role != RoleAssistant {
				continue
			}
			pairs = append(pairs, TurnPair{
				TurnPairID:        nextID,
				UserTurnAbsIdx:    i,
				GTAssistantAbsIdx: j,
				UserText:          t.Text,
				GTAssistantText:   d.Turns[j].Text,
				GTTurnTags:        parseTurnTags(d.Turns[j].TurnTags),
			})
			nextID++
			break
		}
	}
	return pairs
}

func parseTurnTags(m map[string]any) *GTTurnTags {
	if m == nil {
		return nil
	}
	tags := &GTTurnTags{}
	tags.MemoryRequiredKeysGT = stringSlice(m["memory_required_keys_gt"])
	tags.RiskDisclosureRequiredGT = stringSlice(m["risk_disclosure_required_gt"])
	tags.ExplainabilityRubricGT = stringSlice(m["explainability_rubric_gt"])
	if v, ok := m["compliance_label_gt"].(string); ok {
		tags.ComplianceLabelGT = v
	}
	return tags
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		if s, ok := v.([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// UserTurnIndex returns the 1-based index of the given turn-pair's user turn
// within the aligned user-turn sequence (i.e., among turn-pairs, not raw
// turns). Used by the history_turn_index: resolver in C8.
func UserTurnIndex(pairs []TurnPair, pairID int) (int, bool) {
	for i, p := range pairs {
		if p.TurnPairID == pairID {
			return i + 1, true
		}
	}
	return 0, false
}
