package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imgajeed76/tabview/internal/source"
	"github.com/imgajeed76/tabview/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show a JSON or CSV file as a table",
		Long: `Show a JSON array of objects or a CSV file as a sortable, filterable,
paginated table.

JSON object keys are used as column labels. CSV header cells are labels and
records are keyed by the derived key ("First Name" -> firstName). Use "-"
to read stdin (requires --format).

Examples:
  tabview show people.json
  tabview show staff.csv --columns "Name,Start Date" --sort "Start Date"
  tabview show people.json --filter "ann 25" --json
  cat data.csv | tabview show - --format csv --no-pager`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().String("format", "", "Input format: json or csv (default from extension)")
	cmd.Flags().String("comma", "", "CSV field separator (default \",\", tab for .tsv)")
	addViewFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	comma, _ := cmd.Flags().GetString("comma")

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	tbl, err := loadFile(cmd, path, source.Format(format), comma)
	if err != nil {
		return columnError(err, nil)
	}
	log.WithFields(logrus.Fields{
		"path":    path,
		"rows":    len(tbl.Records),
		"columns": len(tbl.Columns),
	}).Debug("file loaded")

	title := filepath.Base(path)
	if path == "-" {
		title = "stdin"
	}
	return showTable(cmd, viewRequest{title: title, table: tbl, cfg: cfg, log: log})
}

func loadFile(cmd *cobra.Command, path string, format source.Format, comma string) (*source.Table, error) {
	if format != source.FormatAuto && format != source.FormatJSON && format != source.FormatCSV {
		return nil, util.UnsupportedFormatError(path)
	}

	if path == "-" {
		switch format {
		case source.FormatJSON:
			return source.LoadJSON(cmd.InOrStdin())
		case source.FormatCSV:
			return source.LoadCSV(cmd.InOrStdin(), csvOptions(comma))
		}
		return nil, util.MissingArgumentError("format", "tabview show - --format csv")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, util.NewError(fmt.Sprintf("Cannot open '%s'", path)).
			WithMessage(err.Error()).
			Wrap(err)
	}
	if comma != "" && format != source.FormatJSON {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return source.LoadCSV(f, csvOptions(comma))
	}
	return source.LoadFile(path, format)
}

func csvOptions(comma string) source.CSVOptions {
	opts := source.CSVOptions{InferNumbers: true}
	if r := []rune(comma); len(r) > 0 {
		opts.Comma = r[0]
		if comma == `\t` {
			opts.Comma = '\t'
		}
	}
	return opts
}
