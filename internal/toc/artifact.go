package toc

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// artifactSchema constrains ToC artifact files loaded from disk. Files
// we wrote ourselves always conform; the schema guards hand-edited or
// foreign files before they reach the splitter.
const artifactSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "title": {"type": "string"},
      "level": {"type": "integer", "minimum": 1},
      "page": {"type": "integer", "minimum": 0},
      "href": {"type": "string"}
    },
    "required": ["title", "level"]
  }
}`

var compiledSchema = jsonschema.MustCompileString("toc.schema.json", artifactSchema)

// Save writes entries to path as an indented JSON array in chapter
// order.
func Save(path string, entries []Entry) error {
	data, err := MarshalIndent(entries)
	if err != nil {
		return fmt.Errorf("failed to encode toc: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write toc file: %w", err)
	}
	return nil
}

// Load reads a ToC artifact from path, validating it against the
// artifact schema before decoding.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toc file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a JSON ToC artifact.
func Parse(data []byte) ([]Entry, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid toc JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("toc does not match schema: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode toc: %w", err)
	}
	for i := range entries {
		entries[i].Title = strings.TrimSpace(entries[i].Title)
	}
	return entries, nil
}
