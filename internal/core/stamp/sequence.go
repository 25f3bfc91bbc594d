// Package stamp contains the pure business logic for dating cases in a dataset.
// This is part of the Functional Core - no I/O, only pure functions.
package stamp

import "time"

// DateLayout is the format written into the date column.
const DateLayout = "2006-01-02"

// labelLayout is used for human-readable range summaries ("Jan 2023").
const labelLayout = "Jan 2006"

// Sequence is an ordered run of month-start dates.
type Sequence []time.Time

// MonthStart normalises t to midnight UTC on the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthStarts builds periods consecutive month-start dates beginning at the
// month containing start. Returns an empty sequence for periods < 1.
func MonthStarts(start time.Time, periods int) Sequence {
	if periods < 1 {
		return Sequence{}
	}
	first := MonthStart(start)
	seq := make(Sequence, periods)
	for i := range seq {
		seq[i] = first.AddDate(0, i, 0)
	}
	return seq
}

// At returns the date for the i-th identifier, wrapping around the sequence.
func (s Sequence) At(i int) time.Time {
	return s[i%len(s)]
}

// Strings returns the sequence formatted with DateLayout.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, d := range s {
		out[i] = d.Format(DateLayout)
	}
	return out
}

// First returns the first date, or the zero time for an empty sequence.
func (s Sequence) First() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0]
}

// Last returns the last date, or the zero time for an empty sequence.
func (s Sequence) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1]
}

// RangeLabel describes the window, e.g. "Jan 2023 to Dec 2024".
func (s Sequence) RangeLabel() string {
	if len(s) == 0 {
		return ""
	}
	return s.First().Format(labelLayout) + " to " + s.Last().Format(labelLayout)
}
