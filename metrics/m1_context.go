package metrics

import "goa.design/agentbench/turneval"

// M1Result is the context-continuity metric (§4.9).
type M1Result struct {
	KeyCoverageMicro   float64            `json:"key_coverage_micro"`
	KeyCoverageMacro   float64            `json:"key_coverage_macro"`
	StrictKeyHitRate   float64            `json:"strict_key_hit_rate"`
	ContradictionRate  float64            `json:"contradiction_rate"`
	SourceRates        map[string]float64 `json:"source_rates"`
	ByDialog           map[string]float64 `json:"by_dialog"`
	Counts             map[string]int     `json:"counts"`
}

// ComputeM1 aggregates M1 over every eligible TurnEvalRow, grouped by
// dialog for the macro average.
func ComputeM1(rowsByDialog map[string][]turneval.TurnEvalRow) M1Result {
	res := M1Result{
		SourceRates: map[string]float64{},
		ByDialog:    map[string]float64{},
		Counts:      map[string]int{},
	}

	var totalRequired, totalHits, eligibleTurns, fullyHitTurns, contradictions int
	sourceHits := map[string]int{}
	var macroSum float64
	var macroCount int

	for dialogID, rows := range rowsByDialog {
		var dRequired, dHits int
		for _, r := range rows {
			if !r.EligibleM1 {
				continue
			}
			eligibleTurns++
			required := len(r.KeyHitFlags)
			hits := sumInts(r.KeyHitFlags)
			dRequired += required
			dHits += hits
			if required > 0 && hits == required {
				fullyHitTurns++
			}
			contradictions += r.ConstraintContradiction
			for _, srcs := range r.KeyHitSources {
				for _, s := range srcs {
					sourceHits[s]++
				}
			}
		}
		totalRequired += dRequired
		totalHits += dHits
		if dRequired > 0 {
			cov := float64(dHits) / float64(dRequired)
			res.ByDialog[dialogID] = cov
			macroSum += cov
			macroCount++
		}
	}

	if totalRequired > 0 {
		res.KeyCoverageMicro = float64(totalHits) / float64(totalRequired)
		for src, h := range sourceHits {
			res.SourceRates[src] = float64(h) / float64(totalRequired)
		}
	}
	if macroCount > 0 {
		res.KeyCoverageMacro = macroSum / float64(macroCount)
	}
	if eligibleTurns > 0 {
		res.StrictKeyHitRate = float64(fullyHitTurns) / float64(eligibleTurns)
		res.ContradictionRate = float64(contradictions) / float64(eligibleTurns)
	}

	res.Counts["eligible_turns"] = eligibleTurns
	res.Counts["total_required"] = totalRequired
	res.Counts["total_hits"] = totalHits
	res.Counts["fully_hit_turns"] = fullyHitTurns
	res.Counts["eligible_dialogs"] = macroCount
	return res
}

func sumInts(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
