package metrics

import "goa.design/agentbench/turneval"

// M5Result is the explainability metric (§4.9).
type M5Result struct {
	RubricHitRate  float64        `json:"rubric_hit_rate"`
	JudgeScoreMean float64        `json:"judge_score_mean"`
	Counts         map[string]int `json:"counts"`
}

// ComputeM5 aggregates M5 over every EligibleM5 TurnEvalRow:
// rubric_hit_rate = Σmin(hits, required) / Σrequired, and judge_score_mean
// averages the 1-5 judge score over turns that received one.
func ComputeM5(rows []turneval.TurnEvalRow) M5Result {
	res := M5Result{Counts: map[string]int{}}
	var totalRequired, totalHits, eligibleTurns int
	var judgeSum float64
	var judgeCount int

	for _, r := range rows {
		if !r.EligibleM5 {
			continue
		}
		eligibleTurns++
		required := len(r.RubricRequired)
		hits := len(r.RubricHitItems)
		if hits > required {
			hits = required
		}
		totalRequired += required
		totalHits += hits
		if r.JudgeScore1To5 != nil {
			judgeSum += *r.JudgeScore1To5
			judgeCount++
		}
	}

	if totalRequired > 0 {
		res.RubricHitRate = float64(totalHits) / float64(totalRequired)
	}
	if judgeCount > 0 {
		res.JudgeScoreMean = judgeSum / float64(judgeCount)
	}
	res.Counts["eligible_turns"] = eligibleTurns
	res.Counts["total_required"] = totalRequired
	res.Counts["total_hits"] = totalHits
	res.Counts["judged_turns"] = judgeCount
	return res
}
