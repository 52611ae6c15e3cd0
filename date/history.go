package date

import (
	"iter"
	"slices"
)

type point[T any] struct {
	on    Date
	value T
}

// History stores a chronological series of values, at most one per day.
type History[T any] struct {
	points []point[T]
}

// search returns the index of on, or where it would be inserted.
func (h *History[T]) search(on Date) (int, bool) {
	return slices.BinarySearchFunc(h.points, on, func(p point[T], t Date) int {
		switch {
		case p.on.Before(t):
			return -1
		case p.on.After(t):
			return 1
		}
		return 0
	})
}

// Append adds a point to the history. Existing value at that date is overwritten.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.points[i].value = v
		return h
	}
	h.points = slices.Insert(h.points, i, point[T]{on, v})
	return h
}

// Len returns the number of days in the history.
func (h *History[T]) Len() int { return len(h.points) }

// Latest returns the latest date and value. If the history is empty, it returns zero values.
func (h *History[T]) Latest() (Date, T) {
	if len(h.points) == 0 {
		var zero T
		return Date{}, zero
	}
	p := h.points[len(h.points)-1]
	return p.on, p.value
}

// Get returns the value on that day, if any.
func (h *History[T]) Get(on Date) (T, bool) {
	if i, found := h.search(on); found {
		return h.points[i].value, true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
func (h *History[T]) ValueAsOf(on Date) (T, bool) {
	i, found := h.search(on)
	if found {
		return h.points[i].value, true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.points[i-1].value, true
}

// Values iterates over date/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for _, p := range h.points {
			if !yield(p.on, p.value) {
				return
			}
		}
	}
}
