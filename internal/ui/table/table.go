// Package table renders the view engine's output. It supports an
// interactive TUI (sorting, live filtering, paging, column expand/hide,
// smooth scrolling), plain text tables, JSON output, and raw
// tab-separated output.
//
// Every mode reads from a view.Controller; the TUI also drives it.
package table

import (
	"io"
	"os"

	"github.com/imgajeed76/tabview/internal/config"
	"github.com/imgajeed76/tabview/internal/view"
	"golang.org/x/term"
)

// DisplayOptions controls how results are rendered.
type DisplayOptions struct {
	// JSON outputs results as a JSON array of objects.
	JSON bool
	// Raw outputs results as tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
	// All prints every filtered row instead of the current page.
	All bool
	// View supplies the page sizes cycled in the TUI.
	View config.ViewConfig
	// Out receives non-interactive output instead of stdout. Setting it
	// disables the TUI.
	Out io.Writer
}

// DisplayResults picks the right output mode based on options and
// environment, then renders the controller's current view. The title is
// shown in the interactive TUI header; for non-interactive modes it is
// ignored.
func DisplayResults(title string, ctrl *view.Controller, opts DisplayOptions) error {
	if opts.Out != nil {
		return display(opts.Out, title, ctrl, opts, false)
	}
	return display(os.Stdout, title, ctrl, opts, term.IsTerminal(int(os.Stdout.Fd())))
}

func display(w io.Writer, title string, ctrl *view.Controller, opts DisplayOptions, isTTY bool) error {
	v := ctrl.View()
	rows := v.VisiblePage
	if opts.All {
		rows = v.OrderedFiltered
	}

	switch {
	case opts.Raw:
		return PrintRaw(w, ctrl.Columns(), rows)
	case opts.JSON:
		return PrintJSON(w, ctrl.Columns(), rows)
	case !isTTY || opts.NoPager || v.SourceTotal == 0:
		PrintPlainTable(w, ctrl.Columns(), rows)
		if !opts.All {
			PrintSummary(w, v)
		}
		return nil
	}

	return RunTableTUI(title, ctrl, opts.View)
}

// Cells formats rows as strings in column order.
func Cells(cols []view.Column, rows []view.Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(cols))
		for j, c := range cols {
			line[j] = view.FormatValue(r.Record.Value(c.Key))
		}
		out[i] = line
	}
	return out
}
