// Package report implements the Output Writer (C10): the final run
// artifacts written to the run directory once the orchestrator and metric
// aggregators have finished.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"goa.design/agentbench/metrics"
	"goa.design/agentbench/trace"
	"goa.design/agentbench/turneval"
)

// Manifest is run_manifest.json: run identity, timings, worker counts,
// counters, and any metric error strings.
type Manifest struct {
	RunID        string            `json:"run_id"`
	TraceVersion string            `json:"trace_version"`
	DatasetPath  string            `json:"dataset_path"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	WorkersDialog int              `json:"workers_dialog"`
	WorkersJudge  int              `json:"workers_judge"`
	Counters     map[string]int    `json:"counters"`
	MetricErrors map[string]string `json:"metric_errors,omitempty"`
}

// SummaryRecord is metrics_summary.json.
type SummaryRecord struct {
	RunID        string           `json:"run_id"`
	TraceVersion string           `json:"trace_version"`
	DatasetPath  string           `json:"dataset_path"`
	Metrics      metrics.Summary  `json:"metrics"`
	Counters     map[string]int   `json:"counters"`
}

// Write emits all five C10 artifacts under outputDir, creating it if
// necessary.
func Write(outputDir string, manifest Manifest, traces []trace.DialogTrace, rows []turneval.TurnEvalRow, summary metrics.Summary) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	manifest.MetricErrors = summary.MetricErrors
	if err := writeJSON(filepath.Join(outputDir, "run_manifest.json"), manifest); err != nil {
		return fmt.Errorf("write run_manifest.json: %w", err)
	}

	if err := writeJSONL(filepath.Join(outputDir, "dialog_trace.jsonl"), traces); err != nil {
		return fmt.Errorf("write dialog_trace.jsonl: %w", err)
	}

	if err := writeJSONL(filepath.Join(outputDir, "turn_eval.jsonl"), rows); err != nil {
		return fmt.Errorf("write turn_eval.jsonl: %w", err)
	}

	sr := SummaryRecord{
		RunID:        manifest.RunID,
		TraceVersion: manifest.TraceVersion,
		DatasetPath:  manifest.DatasetPath,
		Metrics:      summary,
		Counters:     manifest.Counters,
	}
	if err := writeJSON(filepath.Join(outputDir, "metrics_summary.json"), sr); err != nil {
		return fmt.Errorf("write metrics_summary.json: %w", err)
	}

	md := RenderMarkdown(manifest, summary)
	if err := os.WriteFile(filepath.Join(outputDir, "report.md"), []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report.md: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	payload = append(payload, '\n')
	return os.WriteFile(path, payload, 0o644)
}

// writeJSONL marshals each element of a slice as one compact JSON line.
func writeJSONL[T any](path string, items []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if _, err := f.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
