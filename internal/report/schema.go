package report

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://reportcard-export.json"

var studentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": "string"},
		"name":    map[string]any{"type": "string", "minLength": 1},
		"roll_no": map[string]any{"type": "string", "minLength": 1},
		"marks": map[string]any{
			"type":          "object",
			"minProperties": 1,
			"maxProperties": 10,
			"additionalProperties": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"total_marks":  map[string]any{"type": "integer", "minimum": 0},
		"max_possible": map[string]any{"type": "integer", "minimum": 100},
		"percentage":   map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"grade": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"letter": map[string]any{"type": "string", "minLength": 1},
				"color":  map[string]any{"type": "string"},
			},
			"required": []any{"letter", "color"},
		},
		"assessment_date": map[string]any{"type": "string"},
		"attendance":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"conduct": map[string]any{
			"type": "string",
			"enum": []any{"Poor", "Fair", "Good", "Very Good", "Excellent"},
		},
		"teacher_remarks": map[string]any{"type": "string"},
		"timestamp":       map[string]any{"type": "string"},
	},
	"required": []any{
		"id", "name", "roll_no", "marks", "total_marks", "max_possible", "percentage",
		"grade", "assessment_date", "attendance", "conduct", "teacher_remarks", "timestamp",
	},
}

var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "string",
			"pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`,
		},
		"exported_at": map[string]any{"type": "string"},
		"students": map[string]any{
			"type":  "array",
			"items": studentSchema,
		},
	},
	"required": []any{"version", "exported_at", "students"},
}

var compiledDocumentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, so round-trip the Go map.
	defBytes, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// validateDocument checks a decoded export document against the schema.
func validateDocument(parsed any) error {
	compiled, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile export schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &InvalidDocumentError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
