package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// assetFlag is the required -id flag of the commands on a single asset.
type assetFlag struct {
	id string
}

func (c *assetFlag) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the asset (required)")
}

func (c *assetFlag) check() error { return checkIDs([2]string{"id", c.id}) }

// assetAndBase fetches the asset c.id, and the preferred currency.
func (c *assetFlag) assetAndBase(ctx context.Context, client *api.Client) (wellets.Asset, wellets.Currency, error) {
	var (
		assets []wellets.Asset
		base   wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assets, err = client.Assets(gctx)
		return err
	})
	g.Go(func() (err error) {
		_, base, err = references(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return wellets.Asset{}, base, err
	}
	a, ok := wellets.AssetByID(assets, c.id)
	if !ok {
		return a, base, fmt.Errorf("asset %s not found", c.id)
	}
	return a, base, nil
}

// preferred returns the preferred currency.
func preferred(ctx context.Context, client *api.Client) (wellets.Currency, error) {
	_, base, err := references(ctx, client)
	return base, err
}

type assetListCmd struct{}

func (*assetListCmd) Name() string             { return "list" }
func (*assetListCmd) Synopsis() string         { return "list assets with their equivalent" }
func (*assetListCmd) Usage() string            { return "asset list\n" }
func (*assetListCmd) SetFlags(f *flag.FlagSet) {}

func (c *assetListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		assets []wellets.Asset
		base   wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assets, err = client.Assets(gctx)
		return err
	})
	g.Go(func() (err error) {
		base, err = preferred(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "listing assets")
	}
	printMarkdown(renderer.Assets(assets, base))
	return subcommands.ExitSuccess
}

type assetBalanceCmd struct {
	assetFlag
}

func (*assetBalanceCmd) Name() string { return "balance" }
func (*assetBalanceCmd) Synopsis() string {
	return "show the balance of an asset in the preferred currency"
}
func (*assetBalanceCmd) Usage() string { return "asset balance -id <asset>\n" }

func (c *assetBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		b    wellets.AssetBalance
		base wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		b, err = client.AssetBalance(gctx, c.id)
		return err
	})
	g.Go(func() (err error) {
		base, err = preferred(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting asset balance")
	}
	fmt.Fprintln(stdout, renderer.Balance(wellets.Balance{Balance: b.Balance, Currency: base}))
	return subcommands.ExitSuccess
}

type assetTotalBalanceCmd struct{}

func (*assetTotalBalanceCmd) Name() string { return "total-balance" }
func (*assetTotalBalanceCmd) Synopsis() string {
	return "show the sum of all assets in the preferred currency"
}
func (*assetTotalBalanceCmd) Usage() string            { return "asset total-balance\n" }
func (*assetTotalBalanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *assetTotalBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		b    wellets.AssetBalance
		base wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		b, err = client.TotalAssetBalance(gctx)
		return err
	})
	g.Go(func() (err error) {
		base, err = preferred(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting total asset balance")
	}
	fmt.Fprintln(stdout, renderer.Balance(wellets.Balance{Balance: b.Balance, Currency: base}))
	return subcommands.ExitSuccess
}

type assetExpositionCmd struct {
	assetFlag
}

func (*assetExpositionCmd) Name() string     { return "exposition" }
func (*assetExpositionCmd) Synopsis() string { return "show the average load price of an asset" }
func (*assetExpositionCmd) Usage() string {
	return `asset exposition -id <asset>

  Shows the average price paid for one unit of the asset, in the preferred
  currency.
`
}

func (c *assetExpositionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		p    wellets.AverageLoadPrice
		base wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p, err = client.AssetAverageLoadPrice(gctx, c.id)
		return err
	})
	g.Go(func() (err error) {
		base, err = preferred(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting average load price")
	}
	fmt.Fprintln(stdout, renderer.AverageLoadPrice(p.AverageLoadPrice, base))
	return subcommands.ExitSuccess
}

type assetAllocationCmd struct{}

func (*assetAllocationCmd) Name() string             { return "allocation" }
func (*assetAllocationCmd) Synopsis() string         { return "show the share of each asset" }
func (*assetAllocationCmd) Usage() string            { return "asset allocation\n" }
func (*assetAllocationCmd) SetFlags(f *flag.FlagSet) {}

func (c *assetAllocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		as   []wellets.AssetAllocation
		base wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		as, err = client.AssetAllocations(gctx)
		return err
	})
	g.Go(func() (err error) {
		base, err = preferred(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting allocations")
	}
	printMarkdown(renderer.Allocations(as, base))
	return subcommands.ExitSuccess
}

type assetEntriesCmd struct {
	assetFlag
}

func (*assetEntriesCmd) Name() string     { return "entries" }
func (*assetEntriesCmd) Synopsis() string { return "list the buys and sells of an asset" }
func (*assetEntriesCmd) Usage() string {
	return `asset entries -id <asset>

  Lists the entries of an asset, with their buy price, buy amount, current
  equivalent and profit in the preferred currency.
`
}

func (c *assetEntriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	a, base, err := c.assetAndBase(ctx, client)
	if err != nil {
		return failure(err, "getting asset")
	}
	printMarkdown(renderer.AssetEntries(a, base, renderOptions()))
	return subcommands.ExitSuccess
}

type assetHistoryCmd struct {
	assetFlag
	historyFlags
}

func (*assetHistoryCmd) Name() string     { return "history" }
func (*assetHistoryCmd) Synopsis() string { return "show the balance history of an asset" }
func (*assetHistoryCmd) Usage() string {
	return `asset history -id <asset> [-interval 1d|1w] [-start <day>] [-end <day>] [-days <n>]

  Shows the balance of an asset sampled over a range of days.
`
}

func (c *assetHistoryCmd) SetFlags(f *flag.FlagSet) {
	c.assetFlag.SetFlags(f)
	c.historyFlags.SetFlags(f)
}

func (c *assetHistoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	r, err := c.dateRange()
	if err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		a      wellets.Asset
		points []wellets.HistoryPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, _, err = c.assetAndBase(gctx, client)
		return err
	})
	g.Go(func() (err error) {
		points, err = client.AssetHistory(gctx, api.HistoryQuery{ID: c.id, Range: r, Interval: c.interval})
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting asset history")
	}
	title := fmt.Sprintf("%s history %s", a.Currency.Acronym, r)
	printMarkdown(renderer.BalanceHistory(title, a.Currency.Acronym, wellets.BalanceHistory(points), renderOptions()))
	return subcommands.ExitSuccess
}

type assetCapitalGainCmd struct {
	assetFlag
}

func (*assetCapitalGainCmd) Name() string     { return "capital-gain" }
func (*assetCapitalGainCmd) Synopsis() string { return "show the gain of an asset against its cost basis" }
func (*assetCapitalGainCmd) Usage() string    { return "asset capital-gain -id <asset>\n" }

func (c *assetCapitalGainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		gain wellets.CapitalGain
		base wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		gain, err = client.CapitalGain(gctx, c.id)
		return err
	})
	g.Go(func() (err error) {
		base, err = preferred(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting capital gain")
	}
	printMarkdown(renderer.CapitalGain(gain, base))
	return subcommands.ExitSuccess
}
