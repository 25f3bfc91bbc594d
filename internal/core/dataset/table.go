// Package dataset contains the in-memory tabular model of a CSV dataset.
// This is part of the Functional Core - no I/O, only pure functions.
package dataset

// Table is a header plus rows of string cells. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable creates a table from a header and rows. Slices are used as-is.
func NewTable(header []string, rows [][]string) *Table {
	return &Table{Header: header, Rows: rows}
}

// ColumnIndex returns the position of the named column (exact match).
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, col := range t.Header {
		if col == name {
			return i, nil
		}
	}
	available := make([]string, len(t.Header))
	copy(available, t.Header)
	return -1, &MissingColumnError{Column: name, Available: available}
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool {
	_, err := t.ColumnIndex(name)
	return err == nil
}

// DistinctValues returns the distinct values of a column in order of first occurrence.
func (t *Table) DistinctValues(column string) ([]string, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	var values []string
	for _, row := range t.Rows {
		v := row[idx]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, nil
}

// SetColumn fills a column from a function of each row, appending the column
// to the header when it doesn't exist yet.
func (t *Table) SetColumn(name string, value func(row []string) string) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		t.Header = append(t.Header, name)
		idx = len(t.Header) - 1
		for i, row := range t.Rows {
			t.Rows[i] = append(row, "")
		}
	}
	for _, row := range t.Rows {
		row[idx] = value(row)
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	header := make([]string, len(t.Header))
	copy(header, t.Header)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return &Table{Header: header, Rows: rows}
}
