package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbench/turneval"
)

func TestComputeM2AlignedFieldsScorePerfect(t *testing.T) {
	rows := []turneval.ProfileEvalRow{
		{
			DialogID:          "d1",
			Eligible:          true,
			PredRiskLevel:     "low",
			PredHorizon:       "short",
			PredLiquidityNeed: "high",
			PredConstraints:   []string{"不使用杠杆"},
			PredPreferences:   []string{"稳健"},
			GTRiskLevel:       "low",
			GTHorizon:         "short",
			GTLiquidityNeed:   "high",
			GTConstraints:     []string{"不使用杠杆"},
			GTPreferences:     []string{"稳健"},
		},
	}
	res := ComputeM2(rows)
	require.Equal(t, 1.0, res.RiskAccMacro)
	require.Equal(t, 1.0, res.HorizonAccMacro)
	require.Equal(t, 1.0, res.LiquidityAccMacro)
	require.Equal(t, 1.0, res.ConstraintsF1Macro)
	require.Equal(t, 1.0, res.PreferencesF1Macro)
	require.Equal(t, 1.0, res.ProfileScoreMacro)
}

func TestComputeM2FallsBackToKeywordHeuristicWhenSnapshotUnknown(t *testing.T) {
	rows := []turneval.ProfileEvalRow{
		{
			DialogID:        "d1",
			Eligible:        true,
			PredConcatText:  "根据您的情况，建议采取中风险的配置方案，投资期限为中期。",
			GTRiskLevel:     "medium",
			GTHorizon:       "medium",
		},
	}
	res := ComputeM2(rows)
	require.Equal(t, 1.0, res.RiskAccMacro)
	require.Equal(t, 1.0, res.HorizonAccMacro)
}

func TestComputeM2EmptyVsEmptySetScoresOne(t *testing.T) {
	rows := []turneval.ProfileEvalRow{
		{DialogID: "d1", Eligible: true},
	}
	res := ComputeM2(rows)
	require.Equal(t, 1.0, res.ConstraintsF1Macro)
	require.Equal(t, 1.0, res.PreferencesF1Macro)
}

func TestComputeM2IgnoresIneligibleRows(t *testing.T) {
	rows := []turneval.ProfileEvalRow{
		{DialogID: "d1", Eligible: false, GTRiskLevel: "high"},
	}
	res := ComputeM2(rows)
	require.Equal(t, 0, res.Counts["eligible_dialogs"])
	require.Empty(t, res.ByDialog)
}
