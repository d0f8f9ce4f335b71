package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// byteOrderMark is written by spreadsheet tools at the start of UTF-8 exports.
const byteOrderMark = "\uFEFF"

// RepairText returns s as valid UTF-8. Text that is not already UTF-8 is
// read as Windows-1252, the code page most spreadsheet exports and legacy
// database dumps use, so "caf\xe9" becomes "café" and "\x80" becomes "€".
func RepairText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if decoded, err := charmap.Windows1252.NewDecoder().String(s); err == nil {
		return decoded
	}

	// Latin-1 maps every byte to the code point of the same value
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}

// RepairBytes is RepairText for raw column values.
func RepairBytes(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return RepairText(string(b))
}

// TrimBOM removes a leading byte order mark.
func TrimBOM(s string) string {
	return strings.TrimPrefix(s, byteOrderMark)
}

// CleanLabel prepares a header cell for use as a column label.
func CleanLabel(s string) string {
	return strings.TrimSpace(TrimBOM(RepairText(s)))
}
