package turneval

import "math"

// RubricHits implements the §4.8 explainability rubric check: each item is
// hit if its keyword list matches predText.
func RubricHits(required []string, predText string) []string {
	var hit []string
	for _, item := range required {
		keywords, ok := rubricKeywords[item]
		if !ok {
			keywords = []string{item}
		}
		if containsAny(predText, keywords) {
			hit = append(hit, item)
		}
	}
	return hit
}

// JudgeScore computes judge_score_1_5 = round(1 + 4*hits/required, 2) when
// required > 0, else nil (no external judge is invoked; see design notes).
func JudgeScore(hits, required int) *float64 {
	if required <= 0 {
		return nil
	}
	score := 1 + 4*float64(hits)/float64(required)
	score = math.Round(score*100) / 100
	return &score
}
