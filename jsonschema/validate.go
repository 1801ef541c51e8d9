// Package jsonschema validates artifacts against the published JSON Schema.
package jsonschema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/fwojciec/gridiron"
	"github.com/xeipuuv/gojsonschema"
)

// ArtifactSchema is the JSON Schema every published artifact satisfies.
//
//go:embed artifact.schema.json
var ArtifactSchema []byte

// Ensure Validator implements gridiron.ArtifactValidator at compile time.
var _ gridiron.ArtifactValidator = (*Validator)(nil)

// Validator checks artifacts against a compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the artifact schema.
func NewValidator() (*Validator, error) {
	return NewValidatorFromBytes(ArtifactSchema)
}

// NewValidatorFromBytes compiles a schema given as JSON.
func NewValidatorFromBytes(schema []byte) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("artifact does not match schema:")
	for _, e := range ve.Errors {
		fmt.Fprintf(&sb, " %s: %s;", e.Field, e.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateArtifact encodes a and validates it. A violation is reported as
// an EINVALID error whose message lists the offending fields.
func (v *Validator) ValidateArtifact(a *gridiron.Artifact) error {
	if a == nil {
		return gridiron.Errorf(gridiron.EINVALID, "artifact required")
	}

	body, err := gridiron.EncodeArtifact(a, false)
	if err != nil {
		return err
	}
	return v.ValidateJSON(body)
}

// ValidateJSON validates a raw JSON document.
func (v *Validator) ValidateJSON(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return gridiron.Errorf(gridiron.EINVALID, "invalid artifact JSON: %v", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, re := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{Field: re.Field(), Message: re.Description()})
	}
	return gridiron.Errorf(gridiron.EINVALID, "%s", ve.Error())
}
