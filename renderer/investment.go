package renderer

import (
	"time"

	"github.com/etnz/wellets"
)

// Investments lists investments with their status.
func Investments(is []wellets.Investment, opts Options) string {
	d := newDocument()
	var rows [][]string
	for _, i := range is {
		rows = append(rows, []string{i.ID, i.Alias, i.Status, optDate(i.StartedAt, opts), optDate(i.EndedAt, opts)})
	}
	d.table("No investments.", []string{"ID", "Alias", "Status", "Started", "Ended"}, rows, align(5))
	return d.String()
}

func optDate(t *time.Time, opts Options) string {
	if t == nil {
		return "-"
	}
	return opts.date(*t)
}
