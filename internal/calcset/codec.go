package calcset

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aleksandri0/mathpower/internal/llm"
)

// Format is a bank file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown bank format %q: must be json or yaml", s)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// BankSchema is the JSON Schema every bank file must satisfy.
const BankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "name", "levels"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "source": {"type": "string"},
    "created_at": {"type": "string"},
    "levels": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {"$ref": "#/$defs/item"}
      }
    }
  },
  "$defs": {
    "item": {
      "type": "object",
      "required": ["id", "expression", "solution"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "expression": {"type": "string", "minLength": 1},
        "solution": {"type": "string"}
      },
      "additionalProperties": false
    }
  }
}`

var bankSchema = llm.MustParseSchema("bank", "A calculation bank file", BankSchema)

// Decode reads a bank, validates it against BankSchema and checks its
// level keys and IDs. YAML input is validated through its JSON form.
func Decode(r io.Reader, f Format) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}

	if f == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidBank, err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidBank, err)
		}
	}

	if err := validateBank(raw); err != nil {
		return nil, err
	}

	var b Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if _, err := b.Set(); err != nil {
		return nil, err
	}
	return &b, nil
}

func validateBank(raw []byte) error {
	if err := bankSchema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return nil
}

// Encode writes b in the given format.
func Encode(w io.Writer, b *Bank, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode bank: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode bank: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("encode bank: unknown format %q", f)
	}
}
