package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeJSON writes the document as indented JSON.
func EncodeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dump: encode json: %w", err)
	}
	return nil
}

// EncodeYAML writes the document as YAML.
func EncodeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dump: encode yaml: %w", err)
	}
	return enc.Close()
}
