package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// feedbackSchema guards the feedback ingress payload before it is bound to a
// typed record. Range checking beyond the schema happens in the learning
// service so the two layers stay consistent.
const feedbackSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["student_id", "internship_id", "rating"],
	"properties": {
		"student_id": {"type": "string", "minLength": 1},
		"internship_id": {"type": "string", "minLength": 1},
		"rating": {"type": "integer"},
		"comment": {"type": "string"},
		"completion_date": {"type": "string"},
		"would_recommend": {"type": "string"}
	},
	"additionalProperties": false
}`

type ValidationResult struct {
	Valid  bool
	Errors []string
}

// SchemaValidator holds the compiled JSON schemas for ingress payloads.
type SchemaValidator struct {
	feedback *gojsonschema.Schema
}

func NewSchemaValidator() (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(feedbackSchema))
	if err != nil {
		return nil, fmt.Errorf("compile feedback schema: %w", err)
	}
	return &SchemaValidator{feedback: schema}, nil
}

// ValidateFeedback checks a raw JSON feedback payload against the schema.
func (sv *SchemaValidator) ValidateFeedback(payload []byte) *ValidationResult {
	result, err := sv.feedback.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return &ValidationResult{Valid: false, Errors: []string{err.Error()}}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, e.String())
	}
	return out
}
