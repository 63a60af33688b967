package metrics

import "goa.design/agentbench/turneval"

// M3Result is the risk-coverage metric (§4.9).
type M3Result struct {
	RiskCoverageMicro    float64        `json:"risk_coverage_micro"`
	StrictRiskCoverage   float64        `json:"strict_risk_coverage_rate"`
	Counts               map[string]int `json:"counts"`
}

// ComputeM3 aggregates M3 over every EligibleM3 TurnEvalRow across all
// dialogs: risk_coverage = Σmin(hits, required) / Σrequired, and
// strict_risk_coverage_rate is the share of eligible turns where every
// required tag was hit.
func ComputeM3(rows []turneval.TurnEvalRow) M3Result {
	res := M3Result{Counts: map[string]int{}}
	var totalRequired, totalHits, eligibleTurns, fullyHitTurns int

	for _, r := range rows {
		if !r.EligibleM3 {
			continue
		}
		eligibleTurns++
		required := len(r.RiskRequiredTags)
		hits := r.RiskTagHits
		if hits > required {
			hits = required
		}
		totalRequired += required
		totalHits += hits
		if required > 0 && hits == required {
			fullyHitTurns++
		}
	}

	if totalRequired > 0 {
		res.RiskCoverageMicro = float64(totalHits) / float64(totalRequired)
	}
	if eligibleTurns > 0 {
		res.StrictRiskCoverage = float64(fullyHitTurns) / float64(eligibleTurns)
	}
	res.Counts["eligible_turns"] = eligibleTurns
	res.Counts["total_required"] = totalRequired
	res.Counts["total_hits"] = totalHits
	return res
}
