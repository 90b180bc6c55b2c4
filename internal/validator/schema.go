package validator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"payproof/internal/paydoc"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// SchemaSet holds the compiled record schemas, one per document kind.
type SchemaSet struct {
	paystub *jsonschema.Schema
	w2      *jsonschema.Schema
}

// LoadSchemas compiles the embedded record schemas. It fails only on a
// programming error in the schema files themselves, so callers treat an
// error as fatal at startup.
func LoadSchemas() (*SchemaSet, error) {
	paystub, err := compileSchema("schemas/paystub.json")
	if err != nil {
		return nil, err
	}
	w2, err := compileSchema("schemas/w2.json")
	if err != nil {
		return nil, err
	}
	return &SchemaSet{paystub: paystub, w2: w2}, nil
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("adding schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	return schema, nil
}

// Validate checks the record's structure against the schema for its document
// kind. The record is round-tripped through JSON so the schema sees exactly
// the serialized shape consumers receive.
func (s *SchemaSet) Validate(d *paydoc.Document) error {
	schema := s.paystub
	if d.DocType == paydoc.DocTypeW2 {
		schema = s.w2
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshaling record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
