package dataset

import "goa.design/agentbench/dialog"

// Skip reasons, in the exact order Validate checks them.
const (
	SkipInvalidJSON        = "invalid_json"
	SkipMissingTurns       = "missing_turns"
	SkipMissingProfileGT   = "missing_profile_gt"
	SkipInvalidTurnSeq     = "invalid_turn_sequence"
	SkipMissingGTTags      = "missing_gt_tags"
)

// Validate classifies a normalized dialog as eligible for replay or not.
// A zero-value skipReason ("") means the dialog is valid. Checks run in
// the fixed order: invalid_json, missing_turns, missing_profile_gt,
// invalid_turn_sequence, missing_gt_tags.
func Validate(d dialog.Dialog) (valid bool, skipReason string) {
	if d.InvalidJSONError != "" {
		return false, SkipInvalidJSON
	}
	if len(d.Turns) == 0 {
		return false, SkipMissingTurns
	}
	if !d.HasProfileGT {
		return false, SkipMissingProfileGT
	}
	pairs := dialog.Align(d)
	if len(pairs) == 0 {
		return false, SkipInvalidTurnSeq
	}
	anyTags := false
	for _, p := range pairs {
		if p.GTTurnTags != nil {
			anyTags = true
			break
		}
	}
	if !anyTags {
		return false, SkipMissingGTTags
	}
	return true, ""
}
