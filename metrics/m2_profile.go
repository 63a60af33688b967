package metrics

import (
	"strings"

	"goa.design/agentbench/turneval"
)

// M2Result is the profile-accuracy metric (§4.9).
type M2Result struct {
	ProfileScoreMacro  float64            `json:"profile_score_macro"`
	RiskAccMacro       float64            `json:"risk_acc_macro"`
	HorizonAccMacro    float64            `json:"horizon_acc_macro"`
	LiquidityAccMacro  float64            `json:"liquidity_acc_macro"`
	ConstraintsF1Macro float64            `json:"constraints_f1_macro"`
	PreferencesF1Macro float64            `json:"preferences_f1_macro"`
	ByDialog           map[string]float64 `json:"by_dialog"`
	Counts             map[string]int     `json:"counts"`
}

// ComputeM2 aggregates M2 over every eligible ProfileEvalRow.
func ComputeM2(rows []turneval.ProfileEvalRow) M2Result {
	res := M2Result{ByDialog: map[string]float64{}, Counts: map[string]int{}}
	var riskSum, horizonSum, liqSum, consSum, prefSum, overallSum float64
	n := 0

	for _, r := range rows {
		if !r.Eligible {
			continue
		}
		n++

		riskAcc := fieldAccuracy(turneval.CanonicalizeRiskLevel(r.PredRiskLevel, r.PredConcatText), strings.ToLower(r.GTRiskLevel))
		horizonAcc := fieldAccuracy(turneval.CanonicalizeHorizon(r.PredHorizon, r.PredConcatText), strings.ToLower(r.GTHorizon))
		liqAcc := fieldAccuracy(turneval.CanonicalizeLiquidity(r.PredLiquidityNeed, r.PredConcatText), strings.ToLower(r.GTLiquidityNeed))

		consF1 := turneval.SetF1(turneval.MergeMentions(r.PredConstraints, r.GTConstraints, r.PredConcatText), r.GTConstraints)
		prefF1 := turneval.SetF1(turneval.MergeMentions(r.PredPreferences, r.GTPreferences, r.PredConcatText), r.GTPreferences)

		score := (riskAcc + horizonAcc + liqAcc + consF1 + prefF1) / 5

		riskSum += riskAcc
		horizonSum += horizonAcc
		liqSum += liqAcc
		consSum += consF1
		prefSum += prefF1
		overallSum += score
		res.ByDialog[r.DialogID] = score
	}

	if n > 0 {
		res.RiskAccMacro = riskSum / float64(n)
		res.HorizonAccMacro = horizonSum / float64(n)
		res.LiquidityAccMacro = liqSum / float64(n)
		res.ConstraintsF1Macro = consSum / float64(n)
		res.PreferencesF1Macro = prefSum / float64(n)
		res.ProfileScoreMacro = overallSum / float64(n)
	}
	res.Counts["eligible_dialogs"] = n
	return res
}

// fieldAccuracy compares a canonicalized predicted field against the
// ground-truth label. An empty ground truth (the field wasn't asked about)
// always counts as accurate.
func fieldAccuracy(pred, gt string) float64 {
	if gt == "" {
		return 1.0
	}
	if pred == gt {
		return 1.0
	}
	return 0.0
}
