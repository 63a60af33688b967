package report

import (
	"fmt"
	"strings"

	"goa.design/agentbench/metrics"
)

// RenderMarkdown produces the small Markdown table of micro/macro/counts
// that report.md carries.
func RenderMarkdown(manifest Manifest, summary metrics.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Run %s\n\n", manifest.RunID)
	fmt.Fprintf(&b, "Dataset: `%s`\n\n", manifest.DatasetPath)
	fmt.Fprintf(&b, "Started: %s · Finished: %s\n\n", manifest.StartedAt.Format("2006-01-02T15:04:05Z"), manifest.FinishedAt.Format("2006-01-02T15:04:05Z"))

	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| M1 key_coverage (micro) | %.4f |\n", summary.M1.KeyCoverageMicro)
	fmt.Fprintf(&b, "| M1 key_coverage (macro) | %.4f |\n", summary.M1.KeyCoverageMacro)
	fmt.Fprintf(&b, "| M1 strict_key_hit_rate | %.4f |\n", summary.M1.StrictKeyHitRate)
	fmt.Fprintf(&b, "| M1 contradiction_rate | %.4f |\n", summary.M1.ContradictionRate)
	fmt.Fprintf(&b, "| M2 profile_score (macro) | %.4f |\n", summary.M2.ProfileScoreMacro)
	fmt.Fprintf(&b, "| M3 risk_coverage (micro) | %.4f |\n", summary.M3.RiskCoverageMicro)
	fmt.Fprintf(&b, "| M3 strict_risk_coverage_rate | %.4f |\n", summary.M3.StrictRiskCoverage)
	fmt.Fprintf(&b, "| M4 compliance_label_acc | %.4f |\n", summary.M4.LabelAccuracy)
	fmt.Fprintf(&b, "| M4 severe_violation_rate | %.4f |\n", summary.M4.SevereViolationRate)
	fmt.Fprintf(&b, "| M5 rubric_hit_rate | %.4f |\n", summary.M5.RubricHitRate)
	fmt.Fprintf(&b, "| M5 judge_score_mean | %.4f |\n", summary.M5.JudgeScoreMean)
	b.WriteString("\n")

	b.WriteString("## Counters\n\n| Counter | Value |\n|---|---|\n")
	for _, k := range []string{"dialogs_total", "dialogs_ok", "dialogs_partial", "dialogs_failed", "dialogs_skipped"} {
		if v, ok := manifest.Counters[k]; ok {
			fmt.Fprintf(&b, "| %s | %d |\n", k, v)
		}
	}

	if len(summary.MetricErrors) > 0 {
		b.WriteString("\n## Metric errors\n\n")
		for name, msg := range summary.MetricErrors {
			fmt.Fprintf(&b, "- **%s**: %s\n", name, msg)
		}
	}

	return b.String()
}
