package dataset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// lineSchemaJSON describes the on-disk shape of one dataset line: the
// fields rawDialog decodes plus the nested turn/profile_gt/blueprint
// mappings. Beyond the type errors json.Unmarshal already reports, it
// rejects turns that lack a role or text, which Unmarshal alone would
// accept as empty strings.
const lineSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"dialog_id": {"type": "string"},
		"scenario_type": {"type": "string"},
		"difficulty": {"type": "string"},
		"turns": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"role": {"type": "string"},
					"text": {"type": "string"},
					"turn_tags": {"type": "object"}
				},
				"required": ["role", "text"]
			}
		},
		"profile_gt": {
			"type": "object",
			"properties": {
				"risk_level_gt": {"type": "string"},
				"horizon_gt": {"type": "string"},
				"liquidity_need_gt": {"type": "string"},
				"constraints_gt": {"type": "array", "items": {"type": "string"}},
				"preferences_gt": {"type": "array", "items": {"type": "string"}}
			}
		},
		"blueprint": {
			"type": "object",
			"properties": {
				"forbidden_list": {"type": "array", "items": {"type": "string"}}
			}
		}
	}
}`

var (
	lineSchemaOnce sync.Once
	lineSchema     *jsonschema.Schema
	lineSchemaErr  error
)

func compiledLineSchema() (*jsonschema.Schema, error) {
	lineSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(lineSchemaJSON), &doc); err != nil {
			lineSchemaErr = fmt.Errorf("unmarshal dataset line schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("dataset_line.json", doc); err != nil {
			lineSchemaErr = fmt.Errorf("add dataset line schema resource: %w", err)
			return
		}
		lineSchema, lineSchemaErr = c.Compile("dataset_line.json")
	})
	return lineSchema, lineSchemaErr
}

// validateLineSchema checks raw line bytes against the dataset line shape.
// A schema-compile failure is returned unchanged; Load does not tell it
// apart from a bad line and records either as an invalid-JSON placeholder.
func validateLineSchema(line []byte) error {
	schema, err := compiledLineSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(line, &doc); err != nil {
		return fmt.Errorf("unmarshal line: %w", err)
	}
	return schema.Validate(doc)
}
