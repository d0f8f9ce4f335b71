package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/imgajeed76/tabview/internal/ui/styles"
	"github.com/imgajeed76/tabview/internal/view"
	"github.com/mattn/go-runewidth"
)

// PrintJSON outputs rows as a JSON array of objects keyed by column label.
// Keys keep column order and values keep their types.
func PrintJSON(w io.Writer, cols []view.Column, rows []view.Row) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, r := range rows {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for j, c := range cols {
			if j > 0 {
				buf.WriteString(", ")
			}
			k, err := json.Marshal(c.Label)
			if err != nil {
				return err
			}
			v, err := json.Marshal(r.Record.Value(c.Key))
			if err != nil {
				return fmt.Errorf("row %d, column %s: %w", r.Index, c.Label, err)
			}
			buf.Write(k)
			buf.WriteString(": ")
			buf.Write(v)
		}
		buf.WriteString("}")
	}
	if len(rows) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// PrintRaw outputs rows as tab-separated values without a header.
func PrintRaw(w io.Writer, cols []view.Column, rows []view.Row) error {
	for _, line := range Cells(cols, rows) {
		if _, err := fmt.Fprintln(w, strings.Join(line, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// PrintPlainTable prints a properly aligned table for non-TTY output.
// Shows full content without truncation.
func PrintPlainTable(w io.Writer, cols []view.Column, rows []view.Row) {
	if len(cols) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	cells := Cells(cols, rows)

	// Calculate column widths based on actual content (no truncation)
	colWidths := make([]int, len(cols))
	for i, c := range cols {
		colWidths[i] = runewidth.StringWidth(c.Label)
	}
	for _, row := range cells {
		for i, val := range row {
			if n := runewidth.StringWidth(val); n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	// Print header
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, pad(c.Label, colWidths[i]))
	}
	fmt.Fprintln(w)

	// Print separator
	for i, width := range colWidths {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, strings.Repeat("─", width))
	}
	fmt.Fprintln(w)

	// Print rows (full content, no truncation)
	for _, row := range cells {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, pad(val, colWidths[i]))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

// PrintSummary prints the "Showing X to Y of Z entries" footer and the
// page position.
func PrintSummary(w io.Writer, v view.DerivedView) {
	line := v.Summary()
	if v.Total != v.SourceTotal {
		line += fmt.Sprintf(" (filtered from %d)", v.SourceTotal)
	}
	fmt.Fprintln(w, styles.MutedMsg(fmt.Sprintf("%s · page %d of %d", line, v.Page, v.PageCount)))
}

// pad adds spaces to reach the desired display width (no truncation).
func pad(s string, width int) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Truncate shortens a string to fit width, adding "..." if needed.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width > 3 {
		return runewidth.Truncate(s, width, "...")
	}
	return runewidth.Truncate(s, width, "")
}

// PadOrTruncate pads or truncates to exact width (for TUI table).
func PadOrTruncate(s string, width int) string {
	return pad(Truncate(s, width), width)
}
