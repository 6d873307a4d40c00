package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema document shared by the LLM providers, which send
// it as their structured output format, and by local validation of
// generated and imported JSON. It compiles once on first use.
type Schema struct {
	// Name is kebab-case, e.g. "calculation-batch". Providers use it as
	// the tool or format name.
	Name        string
	Description string
	Definition  map[string]any

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

// ParseSchema builds a Schema from a JSON document.
func ParseSchema(name, description, doc string) (*Schema, error) {
	var def map[string]any
	if err := json.Unmarshal([]byte(doc), &def); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}
	return &Schema{Name: name, Description: description, Definition: def}, nil
}

// MustParseSchema is ParseSchema for package-level schemas.
func MustParseSchema(name, description, doc string) *Schema {
	s, err := ParseSchema(name, description, doc)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks raw JSON against the schema.
func (s *Schema) Validate(raw []byte) error {
	compiled, err := s.compile()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema %s: %w", s.Name, err)
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		s.compiled, s.compileErr = compileDefinition(s.Name, s.Definition)
	})
	return s.compiled, s.compileErr
}

// compileDefinition round-trips the definition through JSON so the
// compiler sees the same value types it would get from a file.
func compileDefinition(name string, def map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	url := "schema://mathpower/" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return compiled, nil
}

// validateResponse checks a provider reply. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	if err := schema.Validate(raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
