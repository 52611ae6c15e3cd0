package renderer

import (
	"fmt"
	"strconv"

	"github.com/etnz/wellets"
)

// Assets lists assets with their equivalent in base.
func Assets(as []wellets.Asset, base wellets.Currency) string {
	d := newDocument()
	var rows [][]string
	for _, a := range as {
		rows = append(rows, []string{
			a.ID,
			a.Currency.Acronym + " " + wellets.PP(a.Balance, wellets.Decimals(8), wellets.Loose()),
			equivalent(a.Currency, base, a.Balance, wellets.Loose()),
			strconv.Itoa(len(a.Entries)),
		})
	}
	d.table("No assets.", []string{"ID", "Balance", "Equivalent", "Entries"}, rows, align(4, 1, 2, 3))
	return d.String()
}

// AssetEntries lists the entries of an asset, with their buy price and profit
// valued in base.
func AssetEntries(a wellets.Asset, base wellets.Currency, opts Options) string {
	d := newDocument()
	d.h1(fmt.Sprintf("Entries of %s", a.Currency.Acronym))
	var rows [][]string
	for _, e := range a.Entries {
		row := []string{e.ID, wellets.PP(e.Value, wellets.Decimals(8), wellets.Loose()), "-", "-", "-", "-", opts.date(e.CreatedAt)}
		if v, err := wellets.ValueEntry(a.Currency, e, base); err == nil {
			row[2] = wellets.PP(v.BuyPrice, wellets.Decimals(0))
			row[3] = wellets.PP(v.BuyAmount)
			row[4] = wellets.PP(v.Equivalent)
			row[5] = wellets.PP(v.Profit, wellets.Percent(), wellets.Decimals(0), wellets.WithSymbol())
		}
		rows = append(rows, row)
	}
	d.table("No entries.",
		[]string{
			"ID",
			"Amount (" + a.Currency.Acronym + ")",
			"Buy Price (" + base.Acronym + ")",
			"Buy Amount (" + base.Acronym + ")",
			"Equivalent (" + base.Acronym + ")",
			"Profit",
			"Created",
		},
		rows, align(7, 1, 2, 3, 4, 5))
	return d.String()
}

// Allocations lists the share of each asset in the total balance.
func Allocations(as []wellets.AssetAllocation, base wellets.Currency) string {
	d := newDocument()
	var rows [][]string
	for _, a := range as {
		rows = append(rows, []string{
			a.Asset.ID,
			a.Asset.Currency.Acronym,
			wellets.PP(a.Balance, wellets.Decimals(0)),
			wellets.PP(a.Allocation, wellets.Percent(), wellets.Decimals(1), wellets.WithSymbol()),
		})
	}
	d.table("No allocations.", []string{"ID", "Asset", "Balance (" + base.Acronym + ")", "Allocation"}, rows, align(4, 2, 3))
	return d.String()
}

// CapitalGain shows the gain of an asset against its average load price.
func CapitalGain(g wellets.CapitalGain, base wellets.Currency) string {
	d := newDocument()
	d.keyValues(
		[2]string{"Current Price", base.Acronym + " " + wellets.PP(g.CurrentPrice)},
		[2]string{"Basis Price", base.Acronym + " " + wellets.PP(g.BasisPrice)},
		[2]string{"Gain", base.Acronym + " " + wellets.PP(g.GainAmount)},
		[2]string{"Gain Rate", wellets.PP(g.GainRate, wellets.Percent(), wellets.WithSymbol())},
	)
	return d.String()
}

// AverageLoadPrice renders the average load price, or "-" when unknown.
func AverageLoadPrice(p *float64, base wellets.Currency) string {
	if p == nil {
		return base.Acronym + " -"
	}
	return base.Acronym + " " + wellets.PP(*p)
}
