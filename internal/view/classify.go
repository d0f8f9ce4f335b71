package view

import (
	"encoding/json"

	"github.com/imgajeed76/tabview/internal/util"
)

// Kind is how a column's values are compared when sorting.
type Kind int

const (
	Text Kind = iota
	Chronological
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Chronological:
		return "chronological"
	case Numeric:
		return "numeric"
	default:
		return "text"
	}
}

// Classify decides the comparison kind for a column from one sample value,
// conventionally the first record's. Numeric Go types (and json.Number) are
// Numeric, strings that parse as a date are Chronological, everything else
// is Text.
func Classify(v any) Kind {
	return classify(v, nil)
}

func classify(v any, layouts []string) Kind {
	if _, ok := toFloat(v); ok {
		return Numeric
	}
	if s, ok := v.(string); ok && util.IsDate(s, layouts...) {
		return Chronological
	}
	return Text
}

// toFloat converts numeric runtime types. Strings never convert, even when
// they look like numbers.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
