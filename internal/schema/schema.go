package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildExtractionResultSchema returns the JSON-Schema (draft 2020-12 subset)
// for the serialized ExtractionResult contract. The field names here are the
// published interface a UI, export, or storage layer relies on.
func BuildExtractionResultSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"success", "metadata"},
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"error":   map[string]any{"type": "string"},
			// null for the failure shape, which never carries a field map.
			"data": map[string]any{
				"type":                 []string{"object", "null"},
				"additionalProperties": map[string]any{"type": "string"},
			},
			"accuracy":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filename":         map[string]any{"type": "string"},
					"fileSize":         map[string]any{"type": "integer", "minimum": 0},
					"fileType":         map[string]any{"type": "string"},
					"language":         map[string]any{"type": "string"},
					"formType":         map[string]any{"type": "string"},
					"fieldsExtracted":  map[string]any{"type": "integer", "minimum": 0},
					"totalFields":      map[string]any{"type": "integer", "minimum": 0},
					"processingTimeMs": map[string]any{"type": "integer", "minimum": 0},
					"method":           map[string]any{"type": "string"},
				},
			},
			"debug": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"ocrTextSample": map[string]any{"type": "string"},
					"parseStats": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"accuracy":    map[string]any{"type": "integer"},
							"fieldsFound": map[string]any{"type": "integer"},
							"totalFields": map[string]any{"type": "integer"},
							"ocrQuality":  map[string]any{"type": "number"},
						},
					},
				},
			},
		},
	}
}

// BuildValidationResultSchema returns the JSON-Schema for the serialized
// ValidationResult contract.
func BuildValidationResultSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"isValid", "score", "issues", "suggestions"},
		"properties": map[string]any{
			"isValid":     map[string]any{"type": "boolean"},
			"score":       map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"issues":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"suggestions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"fieldCoverage": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"required":  map[string]any{"type": "integer", "minimum": 0},
					"important": map[string]any{"type": "integer", "minimum": 0},
					"optional":  map[string]any{"type": "integer", "minimum": 0},
					"total":     map[string]any{"type": "integer", "minimum": 0},
				},
			},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
