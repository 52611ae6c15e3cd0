package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
)

type currencyListCmd struct{}

func (*currencyListCmd) Name() string     { return "list" }
func (*currencyListCmd) Synopsis() string { return "list currencies and their dollar rates" }
func (*currencyListCmd) Usage() string {
	return `currency list

  Lists the currencies known by the backend, with their dollar rate and the
  value of one unit in dollars.
`
}
func (*currencyListCmd) SetFlags(f *flag.FlagSet) {}

func (c *currencyListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	currencies, err := client.Currencies(ctx)
	if err != nil {
		return failure(err, "listing currencies")
	}
	printMarkdown(renderer.Currencies(currencies, renderOptions()))
	return subcommands.ExitSuccess
}

type currencyHistoryCmd struct {
	currency string
	historyFlags
}

func (*currencyHistoryCmd) Name() string     { return "history" }
func (*currencyHistoryCmd) Synopsis() string { return "show the price history of a currency" }
func (*currencyHistoryCmd) Usage() string {
	return `currency history -c <acronym|id> [-interval 1d|1w] [-start <day>] [-end <day>] [-days <n>]

  Shows the open, high, low and close prices of a currency over a range of days.
`
}

func (c *currencyHistoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "acronym (e.g. BTC) or id of the currency (required)")
	c.historyFlags.SetFlags(f)
}

func (c *currencyHistoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		return usage("-c is required")
	}
	r, err := c.dateRange()
	if err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	currencies, err := client.Currencies(ctx)
	if err != nil {
		return failure(err, "listing currencies")
	}
	currency, err := currencyOf(currencies, c.currency)
	if err != nil {
		return usage("%v", err)
	}
	klines, err := client.CurrencyHistory(ctx, api.CurrencyHistoryQuery{CurrencyID: currency.ID, Range: r, Interval: c.interval})
	if err != nil {
		return failure(err, "getting %s history", currency.Acronym)
	}
	printMarkdown(renderer.CurrencyHistory(currency, klines, renderOptions()))
	return subcommands.ExitSuccess
}
