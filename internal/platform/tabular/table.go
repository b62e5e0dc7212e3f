package tabular

import (
	"github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
)

// Cell is one named value in a row.
type Cell struct {
	Column string
	Value  jsonvalue.Value
}

// Row is an ordered list of cells. Column order in the first row appended
// to a Table becomes the table schema.
type Row []Cell

// Get returns the value stored under column, or a missing value.
func (r Row) Get(column string) jsonvalue.Value {
	for _, cell := range r {
		if cell.Column == column {
			return cell.Value
		}
	}
	return jsonvalue.Missing()
}

// Table is an in-memory table with a fixed column order. Columns first seen
// on a later row are appended; cells a row does not supply hold "".
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]jsonvalue.Value
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

func (t *Table) Append(row Row) {
	for _, cell := range row {
		if _, ok := t.index[cell.Column]; ok {
			continue
		}
		t.index[cell.Column] = len(t.columns)
		t.columns = append(t.columns, cell.Column)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], emptyCell())
		}
	}

	values := make([]jsonvalue.Value, len(t.columns))
	for i := range values {
		values[i] = emptyCell()
	}
	for _, cell := range row {
		values[t.index[cell.Column]] = cell.Value
	}
	t.rows = append(t.rows, values)
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i with every column of the table.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	out := make(Row, len(t.columns))
	for j, column := range t.columns {
		out[j] = Cell{Column: column, Value: t.rows[i][j]}
	}
	return out
}

func (t *Table) Value(i int, column string) jsonvalue.Value {
	j, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return jsonvalue.Missing()
	}
	return t.rows[i][j]
}

// Rows returns all rows in insertion order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for i := range t.rows {
		out = append(out, t.Row(i))
	}
	return out
}

func emptyCell() jsonvalue.Value {
	return jsonvalue.Str("")
}
