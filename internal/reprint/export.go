package reprint

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteJSON encodes groups as an indented JSON array.
func WriteJSON(w io.Writer, groups []Group) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(groups); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteYAML encodes groups as a YAML sequence.
func WriteYAML(w io.Writer, groups []Group) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(groups); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return encoder.Close()
}
