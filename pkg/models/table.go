package models

import "fmt"

// Table is the tabular value that flows through the analysis pipeline.
// Headers are order-significant; every row must have exactly one cell per
// header. Cells are scalar values (string, number, bool, or nil) as decoded
// from the uploaded file.
//
// Tables are treated as immutable: transforms (column filter, row sampler)
// return a new Table rather than mutating in place, so a Table can be shared
// freely across pipeline stages.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// NewTable constructs a Table from headers and rows.
func NewTable(headers []string, rows [][]any) *Table {
	return &Table{Headers: headers, Rows: rows}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// IsEmpty reports whether the table has no headers or no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Headers) == 0 || len(t.Rows) == 0
}

// Validate checks the row-width invariant: every row must have exactly
// len(Headers) cells. Components treat a violation as a contract error.
func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("table is nil")
	}
	if len(t.Headers) == 0 {
		return fmt.Errorf("table has no headers")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(t.Headers))
		}
	}
	return nil
}
