// Package dataset implements the C1 dataset loader and the C2
// normalizer/validator: reading a line-delimited dataset file into raw
// dialogs and classifying which ones are eligible for replay.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"goa.design/agentbench/dialog"
)

// rawDialog mirrors a dataset line's on-disk shape before normalization.
type rawDialog struct {
	DialogID     string               `json:"dialog_id"`
	Turns        []dialog.Turn        `json:"turns"`
	ProfileGT    *dialog.ProfileGT    `json:"profile_gt"`
	Blueprint    *dialog.Blueprint    `json:"blueprint"`
	ScenarioType string               `json:"scenario_type"`
	Difficulty   string               `json:"difficulty"`
}

// Load reads a line-delimited dataset from r. Each non-empty line is
// decoded as a mapping; a decode failure does not abort the load, it
// produces a placeholder dialog carrying InvalidJSONError instead.
// Every dialog is tagged with its 1-based line number as DatasetIndex.
func Load(r io.Reader) ([]dialog.Dialog, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var out []dialog.Dialog
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawDialog
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			out = append(out, dialog.Dialog{
				DatasetIndex:     lineNo,
				DialogID:         fmt.Sprintf("invalid_json_line_%d", lineNo),
				InvalidJSONError: err.Error(),
			})
			continue
		}
		if err := validateLineSchema([]byte(line)); err != nil {
			out = append(out, dialog.Dialog{
				DatasetIndex:     lineNo,
				DialogID:         fmt.Sprintf("invalid_json_line_%d", lineNo),
				InvalidJSONError: fmt.Sprintf("schema validation failed: %s", err.Error()),
			})
			continue
		}

		d := dialog.Dialog{
			DatasetIndex: lineNo,
			DialogID:     raw.DialogID,
			Turns:        raw.Turns,
			ScenarioType: raw.ScenarioType,
			Difficulty:   raw.Difficulty,
		}
		if raw.ProfileGT != nil {
			d.ProfileGT = *raw.ProfileGT
			d.HasProfileGT = true
		}
		if raw.Blueprint != nil {
			d.Blueprint = *raw.Blueprint
		}
		out = append(out, d)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("dataset: scan failed: %w", err)
	}
	return out, nil
}
