package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// QuizDocumentSchema describes the structure of a quiz JSON document:
// an array of question objects, each with a question string and exactly
// four answers. It deliberately does not enforce the character caps —
// a re-imported document goes through Coerce, which truncates instead
// of rejecting.
var QuizDocumentSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to players",
			},
			"answers": map[string]any{
				"type":     "array",
				"minItems": AnswersPerQuestion,
				"maxItems": AnswersPerQuestion,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "One answer option",
						},
						"is_correct": map[string]any{
							"type":        "boolean",
							"description": "Marks the single correct option",
						},
					},
					"required":             []any{"text", "is_correct"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"question", "answers"},
		"additionalProperties": false,
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidateDocument checks raw quiz JSON against QuizDocumentSchema.
// Used on the re-import path, where a human may have edited the file by
// hand and precise structural errors beat silent coercion surprises.
func ValidateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := documentSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("quiz document does not match the expected shape: %w", err)
	}
	return nil
}

// documentSchema compiles QuizDocumentSchema once and caches it.
func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw
		// bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(QuizDocumentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://quiz-document.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
