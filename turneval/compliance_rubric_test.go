package turneval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbench/trace"
)

func TestPredComplianceLabelCompliantWhenNoViolations(t *testing.T) {
	require.Equal(t, ComplianceCompliant, PredComplianceLabel(nil, nil))
}

func TestPredComplianceLabelMinorViolation(t *testing.T) {
	v := []trace.Violation{{Type: "disclosure_missing", Severity: "low"}}
	require.Equal(t, ComplianceMinorViolation, PredComplianceLabel(nil, v))
}

func TestPredComplianceLabelSevereViolationByType(t *testing.T) {
	v := []trace.Violation{{Type: "guarantee", Severity: "low"}}
	require.Equal(t, ComplianceSevereViolation, PredComplianceLabel(nil, v))
}

func TestPredComplianceLabelSevereViolationByForbiddenHit(t *testing.T) {
	require.Equal(t, ComplianceSevereViolation, PredComplianceLabel([]string{"保证收益"}, nil))
}

func TestGTComplianceLabelDefaultsToCompliant(t *testing.T) {
	require.Equal(t, ComplianceCompliant, GTComplianceLabel(""))
	require.Equal(t, ComplianceCompliant, GTComplianceLabel("unknown_label"))
	require.Equal(t, ComplianceSevereViolation, GTComplianceLabel("SEVERE_VIOLATION"))
}

func TestRubricHitsAndJudgeScore(t *testing.T) {
	hits := RubricHits([]string{"信息依据", "边界声明"}, "这个产品存在风险，波动较大，但我们基于历史数据给出依据，本建议仅供参考")
	require.Contains(t, hits, "信息依据")
	require.Contains(t, hits, "边界声明")

	score := JudgeScore(len(hits), 2)
	require.NotNil(t, score)
	require.InDelta(t, 5.0, *score, 0.001)
}

func TestRubricHitsFallsBackToItemTextWhenNotInTable(t *testing.T) {
	hits := RubricHits([]string{"说明风险"}, "我需要说明风险相关的事项")
	require.Equal(t, []string{"说明风险"}, hits)
}

func TestJudgeScoreNilWhenNoRequiredItems(t *testing.T) {
	require.Nil(t, JudgeScore(0, 0))
}

func TestRiskTagHitsCountsDisclosurePresentByNonEmptyPrediction(t *testing.T) {
	required, hits := RiskTagHits([]string{"无明确风险提示"}, []string{"volatility_risk"})
	require.Equal(t, []string{"risk_disclosure_present"}, required)
	require.Equal(t, 1, hits)
}

func TestPredictedRiskTagsExtractsFromKeywords(t *testing.T) {
	tags := PredictedRiskTags("该产品存在信用风险与流动性风险")
	require.Contains(t, tags, "credit_risk")
	require.Contains(t, tags, "liquidity_risk")
}
