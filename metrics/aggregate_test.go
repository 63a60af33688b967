package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbench/turneval"
)

func TestComputeRunsAllFiveMetrics(t *testing.T) {
	rowsByDialog := map[string][]turneval.TurnEvalRow{
		"d1": {
			{EligibleM1: true, KeyHitFlags: []int{1}, KeyHitSources: [][]string{{"short_term"}}},
			{EligibleM3: true, RiskRequiredTags: []string{"a"}, RiskTagHits: 1},
			{EligibleM4: true, PredComplianceLabel: turneval.ComplianceCompliant, GTComplianceLabel: turneval.ComplianceCompliant},
			{EligibleM5: true, RubricRequired: []string{"a"}, RubricHitItems: []string{"a"}, JudgeScore1To5: score(5.0)},
		},
	}
	profileRows := []turneval.ProfileEvalRow{
		{DialogID: "d1", Eligible: true, PredRiskLevel: "low", GTRiskLevel: "low"},
	}

	sum := Compute(rowsByDialog, profileRows)
	require.Equal(t, 1.0, sum.M1.KeyCoverageMicro)
	require.Equal(t, 1.0, sum.M3.RiskCoverageMicro)
	require.Equal(t, 1.0, sum.M4.LabelAccuracy)
	require.Equal(t, 1.0, sum.M5.RubricHitRate)
	require.Equal(t, 1.0, sum.M2.RiskAccMacro)
	require.Nil(t, sum.MetricErrors)
}

func TestComputeIsolatesAMetricFailure(t *testing.T) {
	require.NotPanics(t, func() {
		errs := map[string]string{}
		withBarrier(errs, "boom", func() { panic("kaboom") })
		require.Equal(t, "kaboom", errs["boom"])
	})
}

func TestComputeEmptyInputYieldsNoErrors(t *testing.T) {
	sum := Compute(map[string][]turneval.TurnEvalRow{}, nil)
	require.Nil(t, sum.MetricErrors)
	require.Equal(t, 0.0, sum.M1.KeyCoverageMicro)
}
