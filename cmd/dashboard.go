package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show an overview of everything you hold" }
func (*dashboardCmd) Usage() string {
	return `dashboard

  Shows the total balance, the assets, the portfolios and the wallets that are
  not empty, valued in the preferred currency.
`
}
func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	store, err := Session()
	if err != nil {
		return failure(err, "locating session")
	}

	d := renderer.Dashboard{Email: store.Email()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Currencies, d.Currency, err = references(gctx, client)
		return err
	})
	g.Go(func() error {
		b, err := client.TotalBalance(gctx)
		d.Total = b.Balance
		return err
	})
	g.Go(func() (err error) {
		d.Assets, err = client.Assets(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Portfolios, err = client.Portfolios(gctx, api.PortfolioFilter{ShowAll: true})
		return err
	})
	g.Go(func() (err error) {
		d.Wallets, err = client.Wallets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "loading dashboard")
	}
	if err := renderer.WriteDashboard(stdout, d); err != nil {
		return failure(err, "writing dashboard")
	}
	return subcommands.ExitSuccess
}
