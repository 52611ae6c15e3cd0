package date

import (
	"fmt"
	"strings"
)

// Interval is the sampling step of a balance history.
type Interval int

const (
	Daily Interval = iota
	Weekly
)

// Intervals lists the intervals accepted by the backend, in their text form.
var Intervals = []string{"1d", "1w"}

func (iv Interval) String() string {
	switch iv {
	case Daily:
		return "1d"
	case Weekly:
		return "1w"
	default:
		panic(fmt.Sprintf("unknown interval %d", int(iv)))
	}
}

// Days returns the number of days in one step.
func (iv Interval) Days() int {
	if iv == Weekly {
		return 7
	}
	return 1
}

// ParseInterval parses "1d" or "1w". Long names ("daily", "week", ...) are accepted too.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(s) {
	case "1d", "daily", "day":
		return Daily, nil
	case "1w", "weekly", "week":
		return Weekly, nil
	default:
		return Daily, fmt.Errorf("unknown interval %q, want one of %s", s, strings.Join(Intervals, ", "))
	}
}

// Set implements flag.Value.
func (iv *Interval) Set(s string) error {
	v, err := ParseInterval(s)
	if err != nil {
		return err
	}
	*iv = v
	return nil
}
