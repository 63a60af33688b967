package turneval

import (
	"regexp"
	"strconv"
	"strings"
)

var maxDrawdownRe = regexp.MustCompile(`最大回撤<\s*(\d+)%`)
var percentTokenRe = regexp.MustCompile(`(\d+)\s*%`)

// ConstraintContradiction implements the M1-companion check in §4.8:
// it returns 1 if any user constraint is contradicted by predText, else 0.
// The result saturates at 1 even if multiple constraints are contradicted.
func ConstraintContradiction(constraints []string, predText string) int {
	for _, c := range constraints {
		if contradictsDrawdown(c, predText) {
			return 1
		}
		if keywords, ok := fixedConstraintKeywords[c]; ok {
			if containsAny(predText, keywords) && !containsAny(predText, negationGuards) {
				return 1
			}
		}
	}
	return 0
}

func contradictsDrawdown(constraint, predText string) bool {
	m := maxDrawdownRe.FindStringSubmatch(constraint)
	if m == nil {
		return false
	}
	if !strings.Contains(predText, "回撤") {
		return false
	}
	threshold, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	for _, pm := range percentTokenRe.FindAllStringSubmatch(predText, -1) {
		val, err := strconv.Atoi(pm[1])
		if err != nil {
			continue
		}
		if val > threshold {
			return true
		}
	}
	return false
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
