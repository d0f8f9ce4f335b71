package view

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column pairs a human-readable label with its programmatic key.
type Column struct {
	Label string
	Key   string
}

// DeriveKey maps a column label to its camel-cased key: "First Name"
// becomes "firstName". The label is split on runs of whitespace, the first
// word is lowercased, and every later word is capitalized.
func DeriveKey(label string) string {
	words := strings.Fields(label)
	var sb strings.Builder
	for i, w := range words {
		if i == 0 {
			sb.WriteString(strings.ToLower(w))
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		sb.WriteString(strings.ToUpper(string(r)))
		sb.WriteString(strings.ToLower(w[size:]))
	}
	return sb.String()
}

// NewColumns derives a Column for every label. It fails if a label derives
// an empty key or if two labels derive the same key.
func NewColumns(labels ...string) ([]Column, error) {
	cols := make([]Column, len(labels))
	for i, label := range labels {
		cols[i] = Column{Label: label, Key: DeriveKey(label)}
	}
	if err := ValidateColumns(cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// ValidateColumns checks a caller-built column set for empty or duplicate
// keys.
func ValidateColumns(cols []Column) error {
	owner := make(map[string]string, len(cols))
	for _, c := range cols {
		if c.Key == "" {
			return fmt.Errorf("%w: %q", ErrEmptyKey, c.Label)
		}
		if prev, ok := owner[c.Key]; ok {
			return fmt.Errorf("%w: %q and %q both map to %q", ErrKeyCollision, prev, c.Label, c.Key)
		}
		owner[c.Key] = c.Label
	}
	return nil
}

// FindColumn finds the column named by s. It matches a key exactly, then a
// label ignoring case, then the key derived from s.
func FindColumn(cols []Column, s string) (Column, bool) {
	s = strings.TrimSpace(s)
	for _, c := range cols {
		if c.Key == s {
			return c, true
		}
	}
	for _, c := range cols {
		if strings.EqualFold(c.Label, s) {
			return c, true
		}
	}
	derived := DeriveKey(s)
	for _, c := range cols {
		if c.Key == derived {
			return c, true
		}
	}
	return Column{}, false
}

// Labels returns the display labels of cols in order.
func Labels(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}
