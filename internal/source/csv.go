package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"
)

// CSVOptions controls LoadCSV.
type CSVOptions struct {
	Comma        rune // field delimiter; 0 means ','
	InferNumbers bool // store cells that parse as numbers as int64/float64
}

// LoadCSV reads a CSV file whose first row holds the column labels. Records
// are keyed by the labels' derived keys, so "First Name" is stored under
// "firstName". Cells in legacy single-byte encodings are repaired to UTF-8.
func LoadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, util.ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := fromHeader(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: cols}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(t.Records)+2, err)
		}
		fields := make([]view.Field, len(cols))
		for i, col := range cols {
			var cell string
			if i < len(row) {
				cell = util.RepairText(row[i])
			}
			fields[i] = view.Field{Key: col.Key, Value: csvValue(cell, opts.InferNumbers)}
		}
		t.Records = append(t.Records, view.NewRecord(fields...))
	}
	return t, nil
}

func csvValue(cell string, infer bool) any {
	if !infer || cell == "" {
		return cell
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell
}
