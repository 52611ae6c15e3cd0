package renderer

import (
	"strings"

	"github.com/etnz/wellets"
)

// Portfolios lists portfolios with their weight, parent, children and wallets.
func Portfolios(ps []*wellets.Portfolio) string {
	d := newDocument()
	var rows [][]string
	for _, p := range ps {
		parent := "-"
		if p.Parent != nil {
			parent = p.Parent.Alias
		}
		children := make([]string, len(p.Children))
		for i, c := range p.Children {
			children[i] = c.Alias
		}
		wallets := make([]string, len(p.Wallets))
		for i, w := range p.Wallets {
			wallets[i] = w.Alias
		}
		rows = append(rows, []string{
			p.ID,
			p.Alias,
			wellets.PP(p.Weight, wellets.Percent(), wellets.Decimals(0), wellets.WithSymbol()),
			parent,
			orDash(strings.Join(children, ", ")),
			orDash(strings.Join(wallets, ", ")),
		})
	}
	d.table("No portfolios.", []string{"ID", "Alias", "Weight", "Parent", "Children", "Wallets"}, rows, align(6, 2))
	return d.String()
}

// Rebalance shows, for each portfolio of the tree, the desired and current
// weights and the action that restores the desired weight.
func Rebalance(r wellets.PortfolioRebalance) string {
	d := newDocument()
	d.h1("Rebalance in " + r.Currency.Acronym)
	var rows [][]string
	for _, c := range r.Changes {
		rows = append(rows, []string{
			c.Portfolio.Alias,
			wellets.PP(c.Portfolio.Weight, wellets.Percent(), wellets.Decimals(0), wellets.WithSymbol()),
			wellets.PP(c.Weight, wellets.Percent(), wellets.WithSymbol()),
			wellets.PP(c.OffBy, wellets.Percent(), wellets.WithSymbol()),
			wellets.PP(c.Target),
			wellets.PP(c.Actual),
			c.Action.Format(r.Currency.Acronym),
		})
	}
	d.table("Nothing to rebalance.", []string{"Portfolio", "Desired", "Current", "Off By", "Target", "Actual", "Rebalance"}, rows, align(7, 1, 2, 3, 4, 5))
	return d.String()
}
