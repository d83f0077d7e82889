package table

import "errors"

var (
	// ErrEmpty indicates a table with no data rows or no data columns.
	ErrEmpty = errors.New("table: empty table")

	// ErrMissingRow indicates a lookup of a row label the table does not have.
	ErrMissingRow = errors.New("table: missing row")

	// ErrMissingColumn indicates a lookup of a column label the table does
	// not have.
	ErrMissingColumn = errors.New("table: missing column")

	// ErrDuplicateLabel indicates a repeated row or column label.
	ErrDuplicateLabel = errors.New("table: duplicate label")

	// ErrLengthMismatch indicates a column vector whose length differs from
	// the table's row count.
	ErrLengthMismatch = errors.New("table: length mismatch")
)
