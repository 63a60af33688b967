package metrics

import (
	"fmt"

	"goa.design/agentbench/turneval"
)

// Summary bundles the five metric results plus any per-metric computation
// errors. It is written as metrics_summary.json; run_manifest.json carries
// only its MetricErrors, as metric_errors.
type Summary struct {
	M1 M1Result `json:"m1_context_continuity"`
	M2 M2Result `json:"m2_profile_accuracy"`
	M3 M3Result `json:"m3_risk_coverage"`
	M4 M4Result `json:"m4_compliance"`
	M5 M5Result `json:"m5_explainability"`

	MetricErrors map[string]string `json:"metric_errors,omitempty"`
}

// Compute runs M1-M5 behind individual failure barriers (§9 "Metric
// isolation"): a panic or error in one metric replaces that metric's result
// with its zero value and records the failure, never aborting the other
// four.
func Compute(rowsByDialog map[string][]turneval.TurnEvalRow, profileRows []turneval.ProfileEvalRow) Summary {
	var allRows []turneval.TurnEvalRow
	for _, rows := range rowsByDialog {
		allRows = append(allRows, rows...)
	}

	sum := Summary{MetricErrors: map[string]string{}}

	withBarrier(sum.MetricErrors, "m1_context_continuity", func() {
		sum.M1 = ComputeM1(rowsByDialog)
	})
	withBarrier(sum.MetricErrors, "m2_profile_accuracy", func() {
		sum.M2 = ComputeM2(profileRows)
	})
	withBarrier(sum.MetricErrors, "m3_risk_coverage", func() {
		sum.M3 = ComputeM3(allRows)
	})
	withBarrier(sum.MetricErrors, "m4_compliance", func() {
		sum.M4 = ComputeM4(allRows)
	})
	withBarrier(sum.MetricErrors, "m5_explainability", func() {
		sum.M5 = ComputeM5(allRows)
	})

	if len(sum.MetricErrors) == 0 {
		sum.MetricErrors = nil
	}
	return sum
}

// withBarrier runs fn, recovering any panic and recording it (or a returned
// error convention via recover) under name in errs. fn is expected to
// assign its result into the enclosing Summary field itself before
// returning; on panic that assignment simply never happens and the field
// keeps its zero value.
func withBarrier(errs map[string]string, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			errs[name] = fmt.Sprintf("%v", r)
		}
	}()
	fn()
}
