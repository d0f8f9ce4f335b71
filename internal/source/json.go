package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/imgajeed76/tabview/internal/view"
)

// LoadJSON reads an array of flat objects. Field order follows the object
// text, and columns are the union of all keys in first-seen order, keyed
// and labelled by the JSON key itself. Nested values are kept as compact
// JSON text.
func LoadJSON(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, errors.New("expected a JSON array of objects")
	}

	t := &Table{}
	seen := make(map[string]bool)
	for dec.More() {
		fields, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(t.Records)+1, err)
		}
		for _, f := range fields {
			if !seen[f.Key] {
				seen[f.Key] = true
				t.Columns = append(t.Columns, view.Column{Label: f.Key, Key: f.Key})
			}
		}
		t.Records = append(t.Records, view.NewRecord(fields...))
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	return t, nil
}

func decodeObject(dec *json.Decoder) ([]view.Field, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected an object")
	}

	var fields []view.Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		v, err := scalar(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, view.Field{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// scalar decodes raw into string, bool, nil, int64 or float64. Objects and
// arrays are returned as compact JSON text.
func scalar(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return v, nil
}
