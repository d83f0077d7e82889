// Package table implements small labeled grids of float64 values backed by
// CSV files: one header row of column labels, one leading column of row
// labels, and a dense numeric payload.
package table

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Table is a dense two-dimensional float64 grid addressed by string row and
// column labels. The corner is the text of the top-left header cell; it names
// what the row labels mean and is carried through to derived tables.
type Table struct {
	corner string
	rows   []string
	cols   []string
	rowIdx map[string]int
	colIdx map[string]int
	data   *mat.Dense
}

// New returns a zero-filled table with the given corner text and labels.
// Labels must be non-blank and unique within their axis, and both axes must
// have at least one label.
func New(corner string, rows, cols []string) (*Table, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, ErrEmpty
	}
	rowIdx, err := index(rows)
	if err != nil {
		return nil, err
	}
	colIdx, err := index(cols)
	if err != nil {
		return nil, err
	}
	return &Table{
		corner: corner,
		rows:   slices.Clone(rows),
		cols:   slices.Clone(cols),
		rowIdx: rowIdx,
		colIdx: colIdx,
		data:   mat.NewDense(len(rows), len(cols), nil),
	}, nil
}

// ZerosLike returns a new zero-filled table with the same corner and labels
// as t.
func ZerosLike(t *Table) *Table {
	z, _ := New(t.corner, t.rows, t.cols) // labels were validated when t was built
	return z
}

func index(labels []string) (map[string]int, error) {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("table: blank label at position %d", i)
		}
		if _, ok := idx[l]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateLabel, l)
		}
		idx[l] = i
	}
	return idx, nil
}

// Corner returns the top-left header cell text.
func (t *Table) Corner() string { return t.corner }

// Rows returns a copy of the row labels in file order.
func (t *Table) Rows() []string { return slices.Clone(t.rows) }

// Cols returns a copy of the column labels in file order.
func (t *Table) Cols() []string { return slices.Clone(t.cols) }

// HasColumn reports whether the table has a column labeled col.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.colIdx[col]
	return ok
}

// At returns the cell at the given row and column labels.
func (t *Table) At(row, col string) (float64, error) {
	i, ok := t.rowIdx[row]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingRow, row)
	}
	j, ok := t.colIdx[col]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	return t.data.At(i, j), nil
}

// Set writes the cell at the given row and column labels.
func (t *Table) Set(row, col string, v float64) error {
	i, ok := t.rowIdx[row]
	if !ok {
		return fmt.Errorf("%w %q", ErrMissingRow, row)
	}
	j, ok := t.colIdx[col]
	if !ok {
		return fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	t.data.Set(i, j, v)
	return nil
}

// Value returns the cell at positional indices, following Rows and Cols
// order. It panics if the indices are out of range.
func (t *Table) Value(i, j int) float64 { return t.data.At(i, j) }

// Column returns a copy of the values under the given column label, in row
// order.
func (t *Table) Column(col string) ([]float64, error) {
	j, ok := t.colIdx[col]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	return mat.Col(nil, j, t.data), nil
}

// SetColumn replaces the values under the given column label. The vector
// must hold exactly one value per row.
func (t *Table) SetColumn(col string, v []float64) error {
	j, ok := t.colIdx[col]
	if !ok {
		return fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	if len(v) != len(t.rows) {
		return fmt.Errorf("%w: column %q wants %d values, got %d", ErrLengthMismatch, col, len(t.rows), len(v))
	}
	t.data.SetCol(j, v)
	return nil
}

// Equal reports whether a and b have the same corner, the same labels in the
// same order, and element-wise equal cells.
func Equal(a, b *Table) bool {
	if a.corner != b.corner {
		return false
	}
	if !slices.Equal(a.rows, b.rows) || !slices.Equal(a.cols, b.cols) {
		return false
	}
	return mat.Equal(a.data, b.data)
}
