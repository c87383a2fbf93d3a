package script

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"adrtools/internal/faults"
	"adrtools/internal/textutil"
)

//go:embed default_schema.yaml
var defaultSchemaYAML []byte

// Schema maps column headers to field keys.
type Schema map[FieldKey][]string

// DefaultSchema returns the built-in header synonyms.
func DefaultSchema() Schema {
	schema, err := DecodeSchema(strings.NewReader(string(defaultSchemaYAML)))
	if err != nil {
		panic(fmt.Sprintf("embedded header schema: %v", err))
	}
	return schema
}

// LoadSchema reads a schema file. An empty path selects the default schema.
func LoadSchema(path string) (Schema, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultSchema(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "script", "load header schema", path, err)
	}
	defer file.Close()
	schema, err := DecodeSchema(file)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "script", "load header schema", path, err)
	}
	return schema, nil
}

// DecodeSchema parses a YAML (or JSON) header schema and checks that every
// required field has at least one header.
func DecodeSchema(r io.Reader) (Schema, error) {
	var raw map[string][]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode header schema: %w", err)
	}
	schema := make(Schema, len(raw))
	for key, headers := range raw {
		schema[FieldKey(strings.ToLower(strings.TrimSpace(key)))] = headers
	}
	for _, key := range RequiredFields {
		if len(schema[key]) == 0 {
			return nil, fmt.Errorf("header schema: no headers for %q", key)
		}
	}
	return schema, nil
}

// Columns maps header cells to field keys. The first column matching a key
// wins. Every required key must be present.
func (s Schema) Columns(header []string) (map[int]FieldKey, error) {
	columns := make(map[int]FieldKey, len(RequiredFields))
	found := make(map[FieldKey]bool, len(RequiredFields))
	for i, cell := range header {
		key, ok := s.lookup(cell)
		if !ok || found[key] {
			continue
		}
		columns[i] = key
		found[key] = true
	}
	var missing []string
	for _, key := range RequiredFields {
		if !found[key] {
			missing = append(missing, string(key))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

func (s Schema) lookup(cell string) (FieldKey, bool) {
	for _, key := range RequiredFields {
		for _, header := range s[key] {
			if textutil.EqualFold(header, cell) {
				return key, true
			}
		}
	}
	return "", false
}
