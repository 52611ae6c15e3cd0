package renderer

import (
	"fmt"
	"strconv"

	"github.com/etnz/wellets"
)

// Accumulations lists accumulation plans.
func Accumulations(as []wellets.Accumulation, opts Options) string {
	d := newDocument()
	var rows [][]string
	for _, a := range as {
		rows = append(rows, []string{
			a.ID,
			a.Alias,
			a.Strategy,
			wellets.PP(a.Quote, wellets.Loose()),
			strconv.Itoa(a.PlannedEntries),
			a.Every.String(),
			opts.date(a.PlannedStart),
			opts.date(a.PlannedEnd),
		})
	}
	d.table("No accumulations.",
		[]string{"ID", "Alias", "Strategy", "Quote", "Entries", "Every", "Start", "End"},
		rows, align(8, 3, 4))
	return d.String()
}

// AccumulationEntries lists the entries of an accumulation of an asset held in currency c.
func AccumulationEntries(a wellets.Accumulation, c wellets.Currency, opts Options) string {
	d := newDocument()
	d.h1(fmt.Sprintf("Accumulation %s", a.Alias))
	d.text(fmt.Sprintf("%d of %d entries, every %s, from %s to %s.",
		len(a.Entries), a.PlannedEntries, a.Every, opts.date(a.PlannedStart), opts.date(a.PlannedEnd)))
	var rows [][]string
	for _, e := range a.Entries {
		rows = append(rows, []string{
			e.ID,
			c.Acronym + " " + wellets.PP(e.Value, wellets.Decimals(8), wellets.Loose()),
			opts.datetime(e.CreatedAt),
			opts.datetime(e.UpdatedAt),
			orDash(e.Description),
		})
	}
	d.table("No entries.", []string{"ID", "Amount", "Created", "Updated", "Description"}, rows, align(5, 1))
	return d.String()
}

// NextEntry shows the next entry due in an accumulation.
func NextEntry(n wellets.NextAccumulationEntry, opts Options) string {
	d := newDocument()
	d.keyValues(
		[2]string{"Entry", strconv.Itoa(n.Entry)},
		[2]string{"Amount", wellets.PP(n.Amount, wellets.Decimals(8), wellets.Loose())},
		[2]string{"Current", wellets.PP(n.Current, wellets.Decimals(8), wellets.Loose())},
		[2]string{"Target", wellets.PP(n.Target, wellets.Decimals(8), wellets.Loose())},
		[2]string{"Date", opts.date(n.Date)},
	)
	return d.String()
}
