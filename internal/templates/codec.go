package templates

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ParseSet decodes a key→Template document. Comments and trailing commas
// are accepted; the cleaned document must match the templateSet schema.
func ParseSet(data []byte) (Set, error) {
	clean := jsonc.ToJSON(data)
	if err := CheckShape(clean, ShapeSet); err != nil {
		return nil, err
	}

	var s Set
	if err := json.Unmarshal(clean, &s); err != nil {
		return nil, fmt.Errorf("decoding template set: %w", err)
	}
	if s == nil {
		s = Set{}
	}
	return s, nil
}

// ParseTemplate decodes a single Template document.
func ParseTemplate(data []byte) (Template, error) {
	clean := jsonc.ToJSON(data)
	if err := CheckShape(clean, ShapeTemplate); err != nil {
		return Template{}, err
	}

	var t Template
	if err := json.Unmarshal(clean, &t); err != nil {
		return Template{}, fmt.Errorf("decoding template: %w", err)
	}
	return t.normalized(), nil
}

// MarshalSet encodes s as pretty-printed JSON with sorted keys and a
// trailing newline.
func MarshalSet(s Set) ([]byte, error) {
	out := make(Set, len(s))
	for k, t := range s {
		out[k] = t.normalized()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding template set: %w", err)
	}
	return append(data, '\n'), nil
}

// MarshalTemplate encodes a single template the same way MarshalSet does.
func MarshalTemplate(t Template) ([]byte, error) {
	data, err := json.MarshalIndent(t.normalized(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return append(data, '\n'), nil
}
