package renderer

import (
	"github.com/etnz/wellets"
)

// Transactions lists transactions with their equivalent in base.
func Transactions(ts []wellets.Transaction, currencies []wellets.Currency, base wellets.Currency, opts Options) string {
	d := newDocument()
	var rows [][]string
	for _, t := range ts {
		c := WalletCurrency(t.Wallet, currencies)
		rows = append(rows, []string{
			t.ID,
			c.Acronym + " " + wellets.PP(t.Value, wellets.Decimals(8), wellets.Loose()),
			equivalent(c, base, t.Value),
			orDash(t.Description),
			opts.datetime(t.CreatedAt),
		})
	}
	d.table("No transactions.", []string{"ID", "Amount", "Equivalent", "Description", "Created"}, rows, align(5, 1, 2))
	return d.String()
}
