package turneval

// CanonicalizeRiskTag maps a surface-form risk tag to its canonical code.
// Unknown surface forms pass through unchanged so callers can still report
// them (and simply never match a predicted tag).
func CanonicalizeRiskTag(tag string) string {
	if canon, ok := riskTagAliases[tag]; ok {
		return canon
	}
	return tag
}

// PredictedRiskTags extracts the set of canonical risk tags a prediction
// asserts, by matching each canonical's keyword list against predText.
func PredictedRiskTags(predText string) []string {
	var out []string
	for canon, keywords := range riskTagKeywords {
		if containsAny(predText, keywords) {
			out = append(out, canon)
		}
	}
	return out
}

// RiskTagHits implements the §4.8 hit rule: for each required canonical
// tag, a hit counts if the canonical is risk_disclosure_present and
// predicted tags are non-empty, or if the canonical is directly present
// among predicted tags.
func RiskTagHits(requiredRaw []string, predictedTags []string) (required []string, hits int) {
	predSet := make(map[string]bool, len(predictedTags))
	for _, t := range predictedTags {
		predSet[t] = true
	}
	required = make([]string, 0, len(requiredRaw))
	for _, raw := range requiredRaw {
		canon := CanonicalizeRiskTag(raw)
		required = append(required, canon)
		if canon == "risk_disclosure_present" && len(predictedTags) > 0 {
			hits++
			continue
		}
		if predSet[canon] {
			hits++
		}
	}
	return required, hits
}
