// Package schema provides JSON schema validation for refguard case files.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/refguard/schema"
)

const caseSchemaName = "case.schema.json"

// compileCaseSchema compiles the embedded case schema once.
var compileCaseSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := schemafs.FS.ReadFile(caseSchemaName)
	if err != nil {
		return nil, fmt.Errorf("read case schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal case schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(caseSchemaName, doc); err != nil {
		return nil, fmt.Errorf("add case schema resource: %w", err)
	}

	s, err := compiler.Compile(caseSchemaName)
	if err != nil {
		return nil, fmt.Errorf("compile case schema: %w", err)
	}
	return s, nil
})

// ValidateCase validates JSON data against the case schema.
func ValidateCase(data []byte) error {
	s, err := compileCaseSchema()
	if err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("case validation failed: %w", err)
	}

	return nil
}
