package table

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// ReadCSV loads a table from a CSV file. The first record is the header, the
// corner text followed by the column labels. Every later record is a row
// label followed by one numeric cell per column. Cells must parse as finite
// numbers; NaN and infinities are rejected.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: read %s: %w", path, err)
	}
	t, err := parse(records)
	if err != nil {
		return nil, fmt.Errorf("table: read %s: %w", path, err)
	}
	return t, nil
}

func parse(records [][]string) (*Table, error) {
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, ErrEmpty
	}
	header := records[0]
	rows := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, rec[0])
	}
	t, err := New(header[0], rows, header[1:])
	if err != nil {
		return nil, err
	}
	for i, rec := range records[1:] {
		for j, s := range rec[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %q: %w", i+2, header[j+1], err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d col %q: value %q is not finite", i+2, header[j+1], s)
			}
			t.data.Set(i, j, v)
		}
	}
	return t, nil
}

// WriteCSV writes the table to path as CSV, creating or truncating the file.
// Cells use the shortest decimal form that parses back to the same float64,
// so writing a table twice yields byte-identical files.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(append([]string{t.corner}, t.cols...))
	for i, row := range t.rows {
		rec := make([]string, 0, len(t.cols)+1)
		rec = append(rec, row)
		for j := range t.cols {
			rec = append(rec, strconv.FormatFloat(t.data.At(i, j), 'f', -1, 64))
		}
		_ = w.Write(rec)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("table: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("table: write %s: %w", path, err)
	}
	return nil
}
