// Package schema validates extraction results against a JSON Schema before
// they are persisted. The storage collaborator stores results verbatim and
// re-hydrates them for rendering, so anything that reaches it must already
// be shape-correct.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ResultSchema describes a persisted ExtractionResult. The confidence
// maximum encodes the engine's 0.95 ceiling.
func ResultSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"extracted", "analytics", "formattedText", "metadata"},
		"properties": map[string]any{
			"extracted": map[string]any{
				"type": "object",
			},
			"analytics": map[string]any{
				"type":     "object",
				"required": []any{"documentType", "confidence", "summary", "insights", "suggestions", "lines"},
				"properties": map[string]any{
					"documentType": map[string]any{"type": "string"},
					"confidence": map[string]any{
						"type":    "number",
						"minimum": 0,
						"maximum": 0.95,
					},
					"summary":     map[string]any{"type": "object"},
					"insights":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"suggestions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"lines":       map[string]any{"type": "array"},
				},
			},
			"formattedText": map[string]any{"type": "string"},
			"metadata": map[string]any{
				"type":     "object",
				"required": []any{"engineVersion", "documentType", "textLength"},
			},
		},
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func resultSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(ResultSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("result.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("result.json")
	})
	return compiled, compileErr
}

// ValidateResult validates a serialized extraction result.
func ValidateResult(data []byte) error {
	s, err := resultSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
