package renderer

import (
	"fmt"

	"github.com/etnz/wellets"
)

// Currencies lists currencies with their dollar rate and dollar countervalue.
func Currencies(cs []wellets.Currency, opts Options) string {
	d := newDocument()
	var rows [][]string
	for _, c := range cs {
		countervalue := "-"
		if v, err := wellets.Convert(c.DollarRate, 1, 1); err == nil {
			countervalue = wellets.PP(v, wellets.Decimals(8), wellets.Loose())
		}
		rows = append(rows, []string{
			c.ID,
			c.Acronym,
			c.Alias,
			wellets.PP(c.DollarRate, wellets.Decimals(8), wellets.Loose()),
			countervalue,
			opts.datetime(c.UpdatedAt),
		})
	}
	d.table("No currencies.", []string{"ID", "Acronym", "Alias", "Dollar Rate", "USD", "Updated"}, rows, align(6, 3, 4))
	return d.String()
}

// CurrencyHistory lists the candlesticks of a currency.
func CurrencyHistory(c wellets.Currency, ks []wellets.KLine, opts Options) string {
	d := newDocument()
	d.h1(fmt.Sprintf("History for %s", c.Acronym))
	var rows [][]string
	for _, k := range ks {
		rows = append(rows, []string{
			opts.date(k.OpenTime),
			wellets.PP(k.OpenPrice, wellets.Decimals(8), wellets.Loose()),
			wellets.PP(k.HighPrice, wellets.Decimals(8), wellets.Loose()),
			wellets.PP(k.LowPrice, wellets.Decimals(8), wellets.Loose()),
			wellets.PP(k.ClosePrice, wellets.Decimals(8), wellets.Loose()),
			wellets.PP(k.Volume),
		})
	}
	d.table("No history.", []string{"Date", "Open", "High", "Low", "Close", "Volume"}, rows, align(6, 1, 2, 3, 4, 5))
	return d.String()
}
