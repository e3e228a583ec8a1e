package mapping

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes the entities as a YAML sequence.
func EncodeYAML(w io.Writer, entities ...*Entity) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entities); err != nil {
		return fmt.Errorf("mapping: encode yaml: %w", err)
	}
	return enc.Close()
}

// EncodeJSON writes the entities as an indented JSON array.
func EncodeJSON(w io.Writer, entities ...*Entity) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entities); err != nil {
		return fmt.Errorf("mapping: encode json: %w", err)
	}
	return nil
}

// DecodeYAML reads entities written by EncodeYAML.
func DecodeYAML(r io.Reader) ([]*Entity, error) {
	var entities []*Entity
	if err := yaml.NewDecoder(r).Decode(&entities); err != nil {
		return nil, fmt.Errorf("mapping: decode yaml: %w", err)
	}
	return entities, nil
}
