package view

import "strings"

// Tokenize splits raw search text on whitespace into lowercase tokens.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// Filter returns the records whose values contain every token, ignoring
// case. All fields take part, not only those shown as columns. An empty
// token list matches every record.
func Filter(records []Record, tokens []string) []Record {
	idx := filterIndices(records, tokens)
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}

// ContainsAny reports whether text contains at least one token, ignoring
// case. Renderers use it to mark the cells that made a row match.
func ContainsAny(text string, tokens []string) bool {
	text = strings.ToLower(text)
	for _, t := range normalizeTokens(tokens) {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func filterIndices(records []Record, tokens []string) []int {
	tokens = normalizeTokens(tokens)
	idx := make([]int, 0, len(records))
	for i, r := range records {
		if len(tokens) == 0 || matches(strings.ToLower(r.String()), tokens) {
			idx = append(idx, i)
		}
	}
	return idx
}

func matches(haystack string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

func normalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
