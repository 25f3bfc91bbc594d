package stamp

import (
	"fmt"

	"github.com/example/casedate/internal/core/dataset"
)

// Assignment maps each distinct case identifier to a date string.
// Order keeps the enumeration order the dates were handed out in.
type Assignment struct {
	Order []string
	Dates map[string]string
}

// Assign gives the i-th distinct identifier seq.At(i). Repeated ids keep their
// first date. The same ids in the same order always produce the same assignment.
func Assign(ids []string, seq Sequence) Assignment {
	a := Assignment{
		Order: make([]string, 0, len(ids)),
		Dates: make(map[string]string, len(ids)),
	}
	if len(seq) == 0 {
		return a
	}
	for _, id := range ids {
		if _, dup := a.Dates[id]; dup {
			continue
		}
		a.Dates[id] = seq.At(len(a.Order)).Format(DateLayout)
		a.Order = append(a.Order, id)
	}
	return a
}

// Len returns the number of distinct identifiers mapped.
func (a Assignment) Len() int {
	return len(a.Order)
}

// DateFor returns the date assigned to id.
func (a Assignment) DateFor(id string) (string, bool) {
	d, ok := a.Dates[id]
	return d, ok
}

// Apply writes the assigned date of every row's identifier into dateColumn,
// adding the column if needed. A row whose identifier has no assignment is an
// invariant violation and panics.
func Apply(tbl *dataset.Table, idColumn, dateColumn string, a Assignment) error {
	idIdx, err := tbl.ColumnIndex(idColumn)
	if err != nil {
		return err
	}
	tbl.SetColumn(dateColumn, func(row []string) string {
		d, ok := a.DateFor(row[idIdx])
		if !ok {
			panic(fmt.Sprintf("stamp: identifier %q has no assigned date", row[idIdx]))
		}
		return d
	})
	return nil
}
