package turneval

import "strings"

// riskLevelKeywordFallback maps a canonical risk level to the keywords that,
// if found anywhere in a dialog's concatenated predicted text, identify that
// level when the alias-table lookup on the snapshot field leaves it unknown.
var riskLevelKeywordFallback = map[string][]string{
	"low":    {"低风险", "保守型"},
	"medium": {"中风险", "稳健型"},
	"high":   {"高风险", "激进型"},
}

var horizonKeywordFallback = map[string][]string{
	"short":  {"短期"},
	"medium": {"中期"},
	"long":   {"长期"},
}

var liquidityKeywordFallback = map[string][]string{
	"low":    {"流动性需求低", "不急用钱", "短期不需要用钱"},
	"medium": {"流动性需求中等"},
	"high":   {"流动性需求高", "急需用钱", "随时支取"},
}

// CanonicalizeRiskLevel maps a predicted risk-level surface form to
// {low, medium, high, unknown}, falling back to a keyword search over
// concatText when the field itself doesn't resolve through the alias table.
func CanonicalizeRiskLevel(field, concatText string) string {
	return canonicalizeProfileField(field, concatText, riskLevelAliases, riskLevelKeywordFallback)
}

// CanonicalizeHorizon maps a predicted investment-horizon surface form to
// {short, medium, long, unknown}, with the same keyword fallback.
func CanonicalizeHorizon(field, concatText string) string {
	return canonicalizeProfileField(field, concatText, horizonAliases, horizonKeywordFallback)
}

// CanonicalizeLiquidity maps a predicted liquidity-need surface form to
// {low, medium, high, unknown}, with the same keyword fallback.
func CanonicalizeLiquidity(field, concatText string) string {
	return canonicalizeProfileField(field, concatText, liquidityAliases, liquidityKeywordFallback)
}

func canonicalizeProfileField(field, concatText string, aliases map[string]string, fallback map[string][]string) string {
	if canon, ok := aliases[strings.ToLower(strings.TrimSpace(field))]; ok {
		return canon
	}
	for canon, keywords := range fallback {
		if containsAny(concatText, keywords) {
			return canon
		}
	}
	return "unknown"
}

// MergeMentions expands a snapshot-derived predicted set with any ground-truth
// item literally mentioned in the concatenated prediction text, per the
// profile-accuracy metric's constraint/preference matching rule.
func MergeMentions(predSet, gtSet []string, concatText string) []string {
	seen := make(map[string]bool, len(predSet))
	out := make([]string, 0, len(predSet))
	for _, p := range predSet {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, g := range gtSet {
		if g == "" || seen[g] {
			continue
		}
		if strings.Contains(concatText, g) {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// SetF1 computes the F1 score of pred against gt treated as sets of
// strings. Empty-vs-empty is defined as 1.0, empty-vs-nonempty as 0.0.
func SetF1(pred, gt []string) float64 {
	if len(pred) == 0 && len(gt) == 0 {
		return 1.0
	}
	if len(pred) == 0 || len(gt) == 0 {
		return 0.0
	}
	gtSet := make(map[string]bool, len(gt))
	for _, g := range gt {
		gtSet[g] = true
	}
	tp := 0
	for _, p := range pred {
		if gtSet[p] {
			tp++
		}
	}
	if tp == 0 {
		return 0.0
	}
	precision := float64(tp) / float64(len(pred))
	recall := float64(tp) / float64(len(gt))
	return 2 * precision * recall / (precision + recall)
}
