package date

import (
	"fmt"
	"time"
)

// DateTimeFormat is the format of date and time inputs, e.g. "2024-03-01 18:30".
const DateTimeFormat = "2006-01-02 15:04"

// ParseDateTime parses a DateTimeFormat input in the local time zone.
// A date alone ("2024-03-01") is accepted and means midnight.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	if d, err := Parse(s); err == nil {
		return d.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid date and time %q want format %q", s, DateTimeFormat)
}
