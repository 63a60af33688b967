package metrics

import "goa.design/agentbench/turneval"

// M4Result is the compliance metric (§4.9).
type M4Result struct {
	LabelAccuracy      float64        `json:"compliance_label_acc"`
	SevereViolationRate float64       `json:"severe_violation_rate"`
	ForbiddenHitRate   float64        `json:"forbidden_hit_rate"`
	Counts             map[string]int `json:"counts"`
}

// ComputeM4 aggregates M4 over every EligibleM4 TurnEvalRow.
func ComputeM4(rows []turneval.TurnEvalRow) M4Result {
	res := M4Result{Counts: map[string]int{}}
	var eligibleTurns, correctLabels, severeTurns, forbiddenHitTurns int

	for _, r := range rows {
		if !r.EligibleM4 {
			continue
		}
		eligibleTurns++
		if r.PredComplianceLabel == r.GTComplianceLabel {
			correctLabels++
		}
		if r.PredComplianceLabel == turneval.ComplianceSevereViolation {
			severeTurns++
		}
		if len(r.ForbiddenHits) > 0 {
			forbiddenHitTurns++
		}
	}

	if eligibleTurns > 0 {
		res.LabelAccuracy = float64(correctLabels) / float64(eligibleTurns)
		res.SevereViolationRate = float64(severeTurns) / float64(eligibleTurns)
		res.ForbiddenHitRate = float64(forbiddenHitTurns) / float64(eligibleTurns)
	}
	res.Counts["eligible_turns"] = eligibleTurns
	res.Counts["correct_labels"] = correctLabels
	res.Counts["severe_turns"] = severeTurns
	res.Counts["forbidden_hit_turns"] = forbiddenHitTurns
	return res
}
