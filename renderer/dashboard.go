package renderer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/etnz/wellets"
	"github.com/fatih/color"
)

// Dashboard is the overview of everything a user holds.
type Dashboard struct {
	Email      string
	Currency   wellets.Currency // preferred currency
	Total      float64          // in Currency
	Assets     []wellets.Asset
	Portfolios []*wellets.Portfolio
	Wallets    []wellets.Wallet
	Currencies []wellets.Currency
}

var title = color.New(color.Bold)

// WriteDashboard writes the dashboard as plain text, with coloured section titles.
// Only wallets with a positive balance are shown.
func WriteDashboard(w io.Writer, d Dashboard) error {
	var wallets []wellets.Wallet
	for _, x := range d.Wallets {
		if x.Balance > 0 {
			wallets = append(wallets, x)
		}
	}

	fmt.Fprintf(w, "Welcome, %s!\n\n", orDash(d.Email))
	fmt.Fprintf(w, "Total balance = %s %s\n\n", d.Currency.Acronym, wellets.PP(d.Total))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title.Fprintln(w, "Assets")
	fmt.Fprintln(tw, "asset\tbalance\tequivalent")
	for _, a := range d.Assets {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Currency.Acronym, wellets.PP(a.Balance), equivalent(a.Currency, d.Currency, a.Balance))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	title.Fprintln(w, "Portfolios")
	fmt.Fprintln(tw, "portfolio\tweight")
	for _, p := range d.Portfolios {
		fmt.Fprintf(tw, "%s\t%s\n", p.Alias, wellets.PP(p.Weight, wellets.Percent(), wellets.Decimals(0), wellets.WithSymbol()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	title.Fprintln(w, "Wallets")
	fmt.Fprintln(tw, "alias\tbalance\tequivalent")
	for _, x := range wallets {
		c := WalletCurrency(x, d.Currencies)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", x.Alias, c.Acronym+" "+wellets.PP(x.Balance), equivalent(c, d.Currency, x.Balance))
	}
	return tw.Flush()
}
