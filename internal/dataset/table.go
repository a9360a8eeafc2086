package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrColumnNotFound is returned when a required column is absent from the header.
var ErrColumnNotFound = errors.New("column not found")

// RawTable holds rows exactly as read from the source. Cells are nil (empty),
// string, float64 or bool.
type RawTable [][]any

// Table is a header-normalized dataset. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]any

	index map[string]int
}

// NewTable builds a Table, padding short rows with nil and truncating long ones.
func NewTable(columns []string, rows [][]any) *Table {
	t := &Table{Columns: columns, Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		row := make([]any, len(columns))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		// first occurrence wins for duplicated headers
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Col returns the position of the named column.
func (t *Table) Col(name string) (int, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// MustCols resolves several column names at once.
func (t *Table) MustCols(names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		idx, ok := t.Col(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, n)
		}
		out[i] = idx
	}
	return out, nil
}

// Value returns the cell at row i for the named column, or nil when the column is unknown.
func (t *Table) Value(i int, name string) any {
	j, ok := t.Col(name)
	if !ok || i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][j]
}

// Normalize promotes the first raw row to column names and returns the remaining
// rows re-indexed from zero. A raw table with zero or one rows yields an empty
// Table. raw is never modified.
func Normalize(raw RawTable) *Table {
	if len(raw) == 0 {
		return NewTable(nil, nil)
	}
	header := make([]string, len(raw[0]))
	for i, v := range raw[0] {
		header[i] = strings.TrimSpace(CellString(v))
	}
	return NewTable(header, raw[1:])
}

// CellString renders a cell the way it is used for headers and group keys.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
