package renderer

import (
	"fmt"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/date"
)

// WalletCurrency returns the currency of w, either embedded or found in currencies.
func WalletCurrency(w wellets.Wallet, currencies []wellets.Currency) wellets.Currency {
	if w.Currency != nil {
		return *w.Currency
	}
	if c, ok := wellets.CurrencyByID(currencies, w.CurrencyID); ok {
		return c
	}
	return wellets.Currency{ID: w.CurrencyID, Acronym: "?"}
}

// Wallets lists wallets with their countervalue in base. The description is
// omitted in compact mode.
func Wallets(ws []wellets.Wallet, currencies []wellets.Currency, base wellets.Currency, compact bool, opts Options) string {
	d := newDocument()
	header := []string{"ID", "Alias", "Balance", "Countervalue", "Updated"}
	if !compact {
		header = append(header, "Description")
	}
	var rows [][]string
	for _, w := range ws {
		c := WalletCurrency(w, currencies)
		row := []string{
			w.ID,
			w.Alias,
			c.Acronym + " " + wellets.PP(w.Balance, wellets.Decimals(8), wellets.Loose()),
			equivalent(c, base, w.Balance, wellets.Loose()),
			opts.date(w.UpdatedAt),
		}
		if !compact {
			row = append(row, orDash(w.Description))
		}
		rows = append(rows, row)
	}
	d.table("No wallets.", header, rows, align(len(header), 2, 3))
	return d.String()
}

// Wallet shows the details of a wallet.
func Wallet(w wellets.Wallet, currencies []wellets.Currency, opts Options) string {
	d := newDocument()
	c := WalletCurrency(w, currencies)
	d.h1(fmt.Sprintf("Wallet %s", w.Alias))
	d.keyValues(
		[2]string{"ID", w.ID},
		[2]string{"Alias", w.Alias},
		[2]string{"Balance", wellets.PP(w.Balance, wellets.Decimals(8), wellets.Loose())},
		[2]string{"Currency", c.Acronym},
		[2]string{"Description", orDash(w.Description)},
		[2]string{"Created", opts.datetime(w.CreatedAt)},
		[2]string{"Updated", opts.datetime(w.UpdatedAt)},
		[2]string{"Portfolios", fmt.Sprintf("%d attached", len(w.Portfolios))},
	)
	return d.String()
}

// Balance renders a single balance, e.g. "USD 1,234.50".
func Balance(b wellets.Balance) string {
	return b.Currency.Acronym + " " + wellets.PP(b.Balance)
}

// BalanceHistory lists a balance sampled over time, as returned for wallets and assets.
func BalanceHistory(title, acronym string, h *date.History[float64], opts Options) string {
	d := newDocument()
	d.h1(title)
	var rows [][]string
	for on, v := range h.Values() {
		rows = append(rows, []string{
			on.Format(opts.DateFormat),
			wellets.PP(v, wellets.Decimals(8), wellets.Loose()),
		})
	}
	d.table("No history.", []string{"Date", "Balance (" + acronym + ")"}, rows, align(2, 1))
	return d.String()
}
