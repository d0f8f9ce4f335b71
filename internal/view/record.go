// Package view implements the view-state engine behind tabview's tables:
// column key derivation, value classification, sorting, token filtering,
// pagination, and the Controller that ties them together.
//
// Everything here is pure and synchronous. Records are never mutated; every
// action on a Controller recomputes the DerivedView from scratch.
package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered, immutable mapping from field key to scalar value.
// The zero Record has no fields.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a Record from fields in order. A repeated key keeps its
// first position and takes the last value.
func NewRecord(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Key]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Key] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// FromMap builds a Record from m using order for the field sequence.
// Keys of m missing from order are appended in sorted order so the result
// stays deterministic.
func FromMap(m map[string]any, order ...string) Record {
	fields := make([]Field, 0, len(m))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if v, ok := m[k]; ok && !seen[k] {
			fields = append(fields, Field{Key: k, Value: v})
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		fields = append(fields, Field{Key: k, Value: m[k]})
	}
	return NewRecord(fields...)
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// Value returns the value stored under key, or nil.
func (r Record) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Keys returns the field keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// String joins every value with "," in field order. Filtering matches
// against this form.
func (r Record) String() string {
	var sb strings.Builder
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(FormatValue(f.Value))
	}
	return sb.String()
}

// FormatValue renders a scalar the way it is displayed and searched:
// integers without a decimal point, floats in shortest form, nil as "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
