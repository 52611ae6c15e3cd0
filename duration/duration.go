// Package duration implements the compact duration notation used to schedule
// accumulations, e.g. "1y 6M", "2d 8h 5m" or "12.5s".
//
// A duration is a sequence of optional groups, in that order:
//
//	y  years
//	M  months (capital M)
//	w  weeks
//	d  days
//	h  hours
//	m  minutes (lower case m)
//	s  seconds
//
// Each group is a number followed by its unit suffix, and optional spaces.
// Numbers may have a fractional part. Fractions are decomposed into the
// smaller units, using average calendar durations for years and months, and
// weeks are always folded into days.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Duration is a calendar aware duration. Zero fields are absent.
//
// Weeks is only there to match the backend payload: Parse never sets it, and
// Format renders it as days.
type Duration struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Weeks   int `json:"weeks"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Examples of valid durations.
var Examples = []string{"8h", "2d 8h 5m 2s", "2m4.3s"}

// FormatError is returned by Parse when the input does not follow the notation.
type FormatError struct {
	Input    string
	Examples []string
}

func (e *FormatError) Error() string {
	quoted := make([]string, len(e.Examples))
	for i, ex := range e.Examples {
		quoted[i] = strconv.Quote(ex)
	}
	return fmt.Sprintf("invalid duration %q, valid examples are %s", e.Input, strings.Join(quoted, ", "))
}

// ErrOutOfRange is returned by Parse when a unit does not fit in an int.
var ErrOutOfRange = errors.New("duration out of range")

const number = `(\d+(?:\.\d+)?)`

var grammar = regexp.MustCompile(`^` +
	`(?:` + number + `y\s*)?` +
	`(?:` + number + `M\s*)?` +
	`(?:` + number + `w\s*)?` +
	`(?:` + number + `d\s*)?` +
	`(?:` + number + `h\s*)?` +
	`(?:` + number + `m\s*)?` +
	`(?:` + number + `s\s*)?` +
	`$`)

// submatch indexes in grammar.
const (
	iYears = iota + 1
	iMonths
	iWeeks
	iDays
	iHours
	iMinutes
	iSeconds
)

// Average calendar durations. They make the decomposition of fractional years
// and months independent of any anchor date: a month is 365.25/12 days.
var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerMonth  = decimal.RequireFromString("30.4375")
	daysPerWeek   = decimal.NewFromInt(7)
	hoursPerDay   = decimal.NewFromInt(24)
	sixty         = decimal.NewFromInt(60)
	maxField      = decimal.NewFromInt(math.MaxInt32)
)

// Parse parses a duration in the compact notation.
//
// The empty string is the zero duration. Fractions cascade down to the next
// unit (0.5d is 12h), and what remains below the second is truncated.
func Parse(text string) (Duration, error) {
	m := grammar.FindStringSubmatch(text)
	if m == nil {
		return Duration{}, &FormatError{Input: text, Examples: Examples}
	}

	value := func(i int) decimal.Decimal {
		if m[i] == "" {
			return decimal.Zero
		}
		// the grammar guarantees a valid decimal.
		return decimal.RequireFromString(m[i])
	}

	days := value(iDays).Add(value(iWeeks).Mul(daysPerWeek))

	var d Duration
	steps := []struct {
		field *int
		value decimal.Decimal
		next  decimal.Decimal // how many of the next unit in one of this unit
	}{
		{&d.Years, value(iYears), monthsPerYear},
		{&d.Months, value(iMonths), daysPerMonth},
		{&d.Days, days, hoursPerDay},
		{&d.Hours, value(iHours), sixty},
		{&d.Minutes, value(iMinutes), sixty},
		{&d.Seconds, value(iSeconds), decimal.Zero},
	}

	carry := decimal.Zero
	for _, s := range steps {
		total := s.value.Add(carry)
		whole := total.Truncate(0)
		if whole.GreaterThan(maxField) {
			return Duration{}, fmt.Errorf("cannot parse %q: %w", text, ErrOutOfRange)
		}
		*s.field = int(whole.IntPart())
		carry = total.Sub(whole).Mul(s.next)
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Duration {
	d, err := Parse(text)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Format renders d in the compact notation, skipping zero fields. Weeks are rendered as days.
// The zero duration is rendered as the empty string.
func Format(d Duration) string {
	fields := []struct {
		value  int
		suffix string
	}{
		{d.Years, "y"},
		{d.Months, "M"},
		{d.Days + 7*d.Weeks, "d"},
		{d.Hours, "h"},
		{d.Minutes, "m"},
		{d.Seconds, "s"},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != 0 {
			parts = append(parts, strconv.Itoa(f.value)+f.suffix)
		}
	}
	return strings.Join(parts, " ")
}

// String returns the compact notation of d.
func (d Duration) String() string { return Format(d) }

// IsZero reports whether all fields are zero.
func (d Duration) IsZero() bool { return d == Duration{} }

// AddTo returns t shifted by d, calendar fields first (see time.Time.AddDate).
func (d Duration) AddTo(t time.Time) time.Time {
	t = t.AddDate(d.Years, d.Months, d.Days+7*d.Weeks)
	return t.Add(time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second)
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
