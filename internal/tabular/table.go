// Package tabular loads delimited datasets and computes the statistics,
// pattern detection, and anomaly scans behind the data-analysis pipeline.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ritik-gupta001/nexalyze/models"
)

// ColumnType mirrors the dtype vocabulary callers expect.
type ColumnType string

const (
	TypeInt    ColumnType = "int64"
	TypeFloat  ColumnType = "float64"
	TypeObject ColumnType = "object"
)

// Column is one typed column. Floats is populated for numeric columns and
// Strings for object columns; Missing marks empty cells in either case.
type Column struct {
	Name    string
	Type    ColumnType
	Floats  []float64
	Strings []string
	Missing []bool
}

// Table is a loaded dataset with columns in file order.
type Table struct {
	Columns []Column
	Rows    int
}

// Numeric reports whether the column holds numbers.
func (c *Column) Numeric() bool {
	return c.Type == TypeInt || c.Type == TypeFloat
}

// Values returns the column's non-missing numeric values in row order.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount counts empty cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// Load parses a dataset by file extension. Only .csv is implemented; .xlsx
// and .xls are recognized but rejected until a reader is registered, and any
// other extension is an unsupported input.
func Load(content []byte, filename string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return loadCSV(content)
	case ".xlsx", ".xls":
		return nil, fmt.Errorf("excel files are not supported yet, convert %s to CSV", filename)
	default:
		return nil, fmt.Errorf("%w: file type %q", models.ErrUnsupportedInput, ext)
	}
}

// SupportedExt reports whether the extension passes the upload allow-list.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

func loadCSV(content []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := records[0]
	rows := records[1:]

	t := &Table{Rows: len(rows)}
	for idx, name := range header {
		t.Columns = append(t.Columns, buildColumn(name, idx, rows))
	}

	slog.Info("loaded data", "rows", t.Rows, "columns", len(t.Columns))
	return t, nil
}

func buildColumn(name string, idx int, rows [][]string) Column {
	col := Column{
		Name:    name,
		Strings: make([]string, len(rows)),
		Missing: make([]bool, len(rows)),
	}

	allInt, allFloat := true, true
	for i, row := range rows {
		var cell string
		if idx < len(row) {
			cell = strings.TrimSpace(row[idx])
		}
		col.Strings[i] = cell
		if missingCell(cell) {
			col.Missing[i] = true
			continue
		}
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allFloat = false
		}
	}

	switch {
	case col.MissingCount() == len(rows):
		col.Type = TypeObject
	case allInt:
		col.Type = TypeInt
	case allFloat:
		col.Type = TypeFloat
	default:
		col.Type = TypeObject
	}

	if col.Numeric() {
		col.Floats = make([]float64, len(rows))
		for i, cell := range col.Strings {
			if col.Missing[i] {
				continue
			}
			col.Floats[i], _ = strconv.ParseFloat(cell, 64)
		}
	}
	return col
}

func missingCell(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "02-01-2006", "01/02/2006", time.RFC3339,
}

// DateColumn finds the first column whose non-missing cells all parse as
// dates, for time-series charting. Returns the column and parsed times, or
// nil when none qualifies.
func (t *Table) DateColumn() (*Column, []time.Time) {
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Type != TypeObject {
			continue
		}
		times := make([]time.Time, 0, len(col.Strings))
		ok := false
		for j, cell := range col.Strings {
			if col.Missing[j] {
				continue
			}
			parsed, err := parseDate(cell)
			if err != nil {
				ok = false
				break
			}
			times = append(times, parsed)
			ok = true
		}
		if ok {
			return col, times
		}
	}
	return nil, nil
}

func parseDate(cell string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a date: %q", cell)
}
