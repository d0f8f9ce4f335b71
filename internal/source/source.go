// Package source loads record collections for display: JSON and CSV files,
// and query results from SQLite or PostgreSQL. Loading happens once, up
// front; sorting and filtering are left to the view engine.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"
)

// Table is a loaded record collection and the columns to show for it.
type Table struct {
	Columns []view.Column
	Records []view.Record
}

// Format identifies a file format.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv", ".tsv":
		return FormatCSV, nil
	}
	return "", util.UnsupportedFormatError(path)
}

// LoadFile reads the file at path. FormatAuto detects the format from the
// extension.
func LoadFile(path string, format Format) (*Table, error) {
	if format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		return LoadJSON(f)
	case FormatCSV:
		opts := CSVOptions{InferNumbers: true}
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			opts.Comma = '\t'
		}
		return LoadCSV(f, opts)
	}
	return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedFormat, format)
}

// Query loads the result of query from a SQL database. driver is
// "postgres" or "sqlite".
func Query(ctx context.Context, driver, dsn, query string) (*Table, error) {
	switch driver {
	case "postgres", "postgresql", "pg":
		return QueryPostgres(ctx, dsn, query)
	case "sqlite", "sqlite3":
		return QuerySQLite(ctx, dsn, query)
	}
	return nil, fmt.Errorf("%w: %q", util.ErrUnsupportedDriver, driver)
}

// WithLabels selects and relabels the columns of t. Each label names an
// existing column (see view.FindColumn) and keeps that column's key; a
// label that names no column is an error.
func (t *Table) WithLabels(labels []string) error {
	cols := make([]view.Column, len(labels))
	for i, label := range labels {
		c, ok := view.FindColumn(t.Columns, label)
		if !ok {
			return fmt.Errorf("%w: %q", view.ErrUnknownColumn, label)
		}
		cols[i] = view.Column{Label: label, Key: c.Key}
	}
	if err := view.ValidateColumns(cols); err != nil {
		return err
	}
	t.Columns = cols
	return nil
}

// fromHeader builds columns from result-set or CSV header names. Each
// header is a display label; records are keyed by its derived key.
func fromHeader(names []string) ([]view.Column, error) {
	labels := make([]string, len(names))
	for i, n := range names {
		labels[i] = util.CleanLabel(n)
	}
	return view.NewColumns(labels...)
}

// normalize converts driver values into the scalar types the view engine
// classifies: numbers stay numeric, timestamps become RFC 3339 strings.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int64, float64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int8:
		return int64(x)
	case float32:
		return float64(x)
	case []byte:
		return util.RepairBytes(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
