package date

import (
	"errors"
	"fmt"
	"iter"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// ErrEmptyRange is returned when a range ends before it starts.
var ErrEmptyRange = errors.New("range ends before it starts")

// NewRange returns the range of the interval containing d.
func NewRange(d Date, iv Interval) Range {
	return Range{From: d.StartOf(iv), To: d.EndOf(iv)}
}

// LastDays returns the n days ending on end.
func LastDays(end Date, n int) Range {
	return Range{From: end.Add(1 - n), To: end}
}

// ParseRange parses both boundaries and checks that from is not after to.
func ParseRange(from, to string) (Range, error) {
	f, err := Parse(from)
	if err != nil {
		return Range{}, fmt.Errorf("range start: %w", err)
	}
	t, err := Parse(to)
	if err != nil {
		return Range{}, fmt.Errorf("range end: %w", err)
	}
	r := Range{From: f, To: t}
	if t.Before(f) {
		return Range{}, fmt.Errorf("%v: %w", r, ErrEmptyRange)
	}
	return r, nil
}

// Contains returns true if date is included in the range.
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range.
func (r Range) Days() int { return r.From.DaysUntil(r.To) + 1 }

// Steps returns the first day of each interval step in the range.
func (r Range) Steps(iv Interval) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(iv.Days()) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
