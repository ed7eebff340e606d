package validator

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/aas-record.json
var recordSchema []byte

var (
	compiledOnce   sync.Once
	compiledSchema *gojsonschema.Schema
	compileErr     error
)

func loadRecordSchema() (*gojsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recordSchema))
	})
	return compiledSchema, compileErr
}

// RecordSchemaChecker validates record documents against the embedded JSON
// schema. It only understands FormRecord.
type RecordSchemaChecker struct{}

// NewRecordSchemaChecker returns a checker backed by the embedded schema.
func NewRecordSchemaChecker() *RecordSchemaChecker {
	return &RecordSchemaChecker{}
}

// Check implements SchemaChecker.
func (RecordSchemaChecker) Check(_ context.Context, req SchemaRequest) (*SchemaResult, error) {
	if req.Form != FormRecord {
		return nil, fmt.Errorf("%w: local checks support the record form only", ErrUnavailable)
	}
	schema, err := loadRecordSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: compiling record schema: %w", ErrUnavailable, err)
	}
	res, err := schema.Validate(gojsonschema.NewStringLoader(req.Document))
	if err != nil {
		return &SchemaResult{Valid: false, Errors: []SchemaError{{Message: "record is not valid JSON: " + err.Error()}}}, nil
	}
	out := &SchemaResult{Valid: res.Valid(), Errors: []SchemaError{}}
	for _, e := range res.Errors() {
		// allOf branches repeat the concrete finding under a generic message.
		if e.Type() == "number_all_of" || e.Type() == "condition_then" {
			continue
		}
		out.Errors = append(out.Errors, SchemaError{Message: e.Field() + ": " + e.Description(), Field: e.Field()})
	}
	return out, nil
}
