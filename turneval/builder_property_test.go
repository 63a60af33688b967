package turneval

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"goa.design/agentbench/dialog"
	"goa.design/agentbench/trace"
)

// TestBuildRowsKeyHitFlagsAndSourcesStayInLockstepProperty validates that
// every resolvable required key produces exactly one KeyHitFlags entry and
// one KeyHitSources entry, for any combination of required keys attached
// to a turn.
func TestBuildRowsKeyHitFlagsAndSourcesStayInLockstepProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	keyGen := gen.OneConstOf(
		"profile_gt.risk_level_gt",
		"profile_gt.horizon_gt",
		"profile_gt.constraints_gt[0]",
		"history_turn_index:1",
		"nonexistent_key",
	)

	properties.Property("len(KeyHitFlags) == len(KeyHitSources) <= len(required)", prop.ForAll(
		func(keys []string) bool {
			dt := trace.DialogTrace{
				DialogID:     "d1",
				ValidDialog:  true,
				ProfileGT:    dialog.ProfileGT{RiskLevelGT: "medium", HorizonGT: "long"},
				Turns: []trace.TurnTrace{
					{
						TurnPairID: 1,
						UserText:   "what is my risk tolerance",
						TurnStatus: trace.TurnOK,
						GTTurnTags: &dialog.GTTurnTags{MemoryRequiredKeysGT: keys},
						PredAssistantText: "your risk tolerance is medium over the long term",
					},
				},
			}
			rows := BuildRows(dt)
			if len(rows) != 1 {
				return false
			}
			row := rows[0]
			return len(row.KeyHitFlags) == len(row.KeyHitSources) && len(row.KeyHitFlags) <= len(keys)
		},
		gen.SliceOf(keyGen),
	))

	properties.TestingRun(t)
}
