package dump

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat indicates the input matched neither JSON nor YAML.
var ErrUnknownFormat = errors.New("dump: unknown format")

// DecodeJSON reads one JSON document.
func DecodeJSON(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("dump: decode json: %w", err)
	}
	return &doc, nil
}

// DecodeYAML reads one YAML document.
func DecodeYAML(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("dump: decode yaml: %w", err)
	}
	return &doc, nil
}

// Decode sniffs the format from the first non-whitespace byte: '{' means
// JSON, anything else is treated as YAML (of which JSON is a subset, so
// sniffing only picks the stricter decoder).
func Decode(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
			}
			continue
		case '{':
			return DecodeJSON(br)
		default:
			return DecodeYAML(br)
		}
	}
}
