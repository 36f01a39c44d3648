package keyrule

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Decode helpers produce the canonical instance tree the engine validates:
// map[string]any objects, []any arrays, string/bool scalars, json.Number
// numbers (preserving the Integer/Number refinement), and nil for null.

// DecodeJSON decodes a JSON document into the canonical tree.
func DecodeJSON(data []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader decodes a JSON document from r into the canonical tree.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("keyrule: decode json: %w", err)
	}
	// Trailing garbage after the document is a caller error, not ignorable.
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("keyrule: decode json: trailing data after document")
	}
	return v, nil
}

// DecodeYAML decodes a YAML document into the canonical tree. YAML scalars are
// normalized to the JSON data model: integers and floats become json.Number,
// map keys must be strings.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("keyrule: decode yaml: %w", err)
	}
	return normalizeYAML(v)
}

// normalizeYAML converts YAML-decoded values (which may contain map[any]any
// and native Go numbers) into the canonical JSON-like tree recursively.
func normalizeYAML(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalizeYAML(vv)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("keyrule: decode yaml: non-string map key %v", k)
			}
			nv, err := normalizeYAML(vv)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			nv, err := normalizeYAML(vv)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	default:
		// string, bool, nil pass through unchanged.
		return v, nil
	}
}
