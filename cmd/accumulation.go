package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/date"
	"github.com/etnz/wellets/duration"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// accumulation finds an accumulation by id among all accumulations.
func accumulation(ctx context.Context, client *api.Client, id string) (wellets.Accumulation, error) {
	as, err := client.Accumulations(ctx, "")
	if err != nil {
		return wellets.Accumulation{}, err
	}
	a, ok := wellets.AccumulationByID(as, id)
	if !ok {
		return a, fmt.Errorf("accumulation %s not found", id)
	}
	return a, nil
}

type accumulationListCmd struct {
	asset string
}

func (*accumulationListCmd) Name() string     { return "list" }
func (*accumulationListCmd) Synopsis() string { return "list accumulation plans" }
func (*accumulationListCmd) Usage() string    { return "accumulation list [-asset <asset>]\n" }

func (c *accumulationListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "id of the asset; defaults to all assets")
}

func (c *accumulationListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset != "" {
		if err := checkIDs([2]string{"asset", c.asset}); err != nil {
			return usage("%v", err)
		}
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	as, err := client.Accumulations(ctx, c.asset)
	if err != nil {
		return failure(err, "listing accumulations")
	}
	printMarkdown(renderer.Accumulations(as, renderOptions()))
	return subcommands.ExitSuccess
}

type accumulationShowCmd struct {
	id string
}

func (*accumulationShowCmd) Name() string     { return "show" }
func (*accumulationShowCmd) Synopsis() string { return "show the entries of an accumulation plan" }
func (*accumulationShowCmd) Usage() string    { return "accumulation show -id <accumulation>\n" }

func (c *accumulationShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the accumulation (required)")
}

func (c *accumulationShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		a      wellets.Accumulation
		assets []wellets.Asset
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = accumulation(gctx, client, c.id)
		return err
	})
	g.Go(func() (err error) {
		assets, err = client.Assets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting accumulation")
	}
	asset, _ := wellets.AssetByID(assets, a.AssetID)
	printMarkdown(renderer.AccumulationEntries(a, asset.Currency, renderOptions()))
	return subcommands.ExitSuccess
}

type accumulationNextEntryCmd struct {
	id string
}

func (*accumulationNextEntryCmd) Name() string     { return "next-entry" }
func (*accumulationNextEntryCmd) Synopsis() string { return "show the next entry due in an accumulation plan" }
func (*accumulationNextEntryCmd) Usage() string    { return "accumulation next-entry -id <accumulation>\n" }

func (c *accumulationNextEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the accumulation (required)")
}

func (c *accumulationNextEntryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	n, err := client.NextAccumulationEntry(ctx, c.id)
	if err != nil {
		return failure(err, "getting next entry")
	}
	printMarkdown(renderer.NextEntry(n, renderOptions()))
	return subcommands.ExitSuccess
}

type accumulationCreateCmd struct {
	asset    string
	alias    string
	strategy string
	quote    float64
	entries  int
	every    duration.Duration
	start    string
	end      string
}

func (*accumulationCreateCmd) Name() string     { return "create" }
func (*accumulationCreateCmd) Synopsis() string { return "plan periodic buys of an asset" }
func (*accumulationCreateCmd) Usage() string {
	return `accumulation create -asset <asset> -alias <alias> -strategy <strategy> -quote <amount> -entries <n> -every <duration> [-start <YYYY-MM-DD HH:MM>] [-end <YYYY-MM-DD HH:MM>]

  Plans -entries buys of an asset, one every -every, e.g. "-every 1M" for
  monthly buys. See "wellets topic duration" for the duration notation.

  The plan starts now by default, and ends with its last planned entry.
`
}

func (c *accumulationCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "id of the asset (required)")
	f.StringVar(&c.alias, "alias", "", "name of the plan (required)")
	f.StringVar(&c.strategy, "strategy", "", "name of the strategy (required)")
	f.Float64Var(&c.quote, "quote", 0, "total amount to invest (required)")
	f.IntVar(&c.entries, "entries", 0, "number of planned entries (required)")
	f.Var(&c.every, "every", "period between two entries, e.g. 1w or 1M (required)")
	f.StringVar(&c.start, "start", "", "planned start; defaults to now")
	f.StringVar(&c.end, "end", "", "planned end; defaults to the last planned entry")
}

func (c *accumulationCreateCmd) request() (api.AccumulationRequest, error) {
	r := api.AccumulationRequest{
		AssetID:        c.asset,
		Alias:          c.alias,
		Strategy:       c.strategy,
		Quote:          c.quote,
		PlannedEntries: c.entries,
		Every:          c.every,
	}
	if err := checkIDs([2]string{"asset", c.asset}); err != nil {
		return r, err
	}
	if err := wellets.ValidateNotEmpty(c.alias); err != nil {
		return r, flagError("alias", err)
	}
	if err := wellets.ValidateNotEmpty(c.strategy); err != nil {
		return r, flagError("strategy", err)
	}
	if c.quote <= 0 {
		return r, flagError("quote", errors.New("must be greater than 0"))
	}
	if c.entries <= 0 {
		return r, flagError("entries", errors.New("must be greater than 0"))
	}
	if c.every.IsZero() {
		return r, errRequired("every")
	}
	var err error
	if r.PlannedStart, err = parseCreatedAt(c.start); err != nil {
		return r, flagError("start", err)
	}
	if c.end == "" {
		r.PlannedEnd = r.PlannedStart
		for range c.entries - 1 {
			r.PlannedEnd = c.every.AddTo(r.PlannedEnd)
		}
		return r, nil
	}
	if r.PlannedEnd, err = date.ParseDateTime(c.end); err != nil {
		return r, flagError("end", err)
	}
	if r.PlannedEnd.Before(r.PlannedStart) {
		return r, errors.New("-end is before -start")
	}
	return r, nil
}

func (c *accumulationCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.request()
	if err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	a, err := client.CreateAccumulation(ctx, r)
	if err != nil {
		return failure(err, "creating accumulation")
	}
	printID(a.ID)
	return subcommands.ExitSuccess
}

type accumulationDeleteCmd struct {
	id  string
	yes bool
}

func (*accumulationDeleteCmd) Name() string     { return "delete" }
func (*accumulationDeleteCmd) Synopsis() string { return "delete an accumulation plan" }
func (*accumulationDeleteCmd) Usage() string    { return "accumulation delete -id <accumulation> [-y]\n" }

func (c *accumulationDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the accumulation (required)")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *accumulationDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	if !confirm(c.yes, "Delete accumulation %s?", c.id) {
		return subcommands.ExitFailure
	}
	a, err := client.DeleteAccumulation(ctx, c.id)
	if err != nil {
		return failure(err, "deleting accumulation")
	}
	printID(a.ID)
	return subcommands.ExitSuccess
}

type accumulationCreateEntryCmd struct {
	id string
	transactionFlags
}

func (*accumulationCreateEntryCmd) Name() string { return "create-entry" }
func (*accumulationCreateEntryCmd) Synopsis() string {
	return "record the next entry of an accumulation plan"
}
func (*accumulationCreateEntryCmd) Usage() string {
	return `accumulation create-entry -id <accumulation> -wallet <wallet> -value <amount> [-outcome] [-dollar-rate <rate> | -change-currency <acronym|id> -change <value>] [-description <text>] [-created-at <YYYY-MM-DD HH:MM>] [-y]

  Records a transaction as an entry of an accumulation plan, and prints its id.
  The description defaults to "<alias> entry #<n>".
`
}

func (c *accumulationCreateEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the accumulation (required)")
	c.transactionFlags.SetFlags(f)
	f.StringVar(&c.description, "description", "", "description of the transaction")
}

func (c *accumulationCreateEntryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	if c.description == "" {
		var (
			a    wellets.Accumulation
			next wellets.NextAccumulationEntry
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			a, err = accumulation(gctx, client, c.id)
			return err
		})
		g.Go(func() (err error) {
			next, err = client.NextAccumulationEntry(gctx, c.id)
			return err
		})
		if err := g.Wait(); err != nil {
			return failure(err, "getting accumulation")
		}
		c.description = fmt.Sprintf("%s entry #%d", a.Alias, next.Entry)
	}
	t, ok, err := c.create(ctx, client, &c.id)
	if err != nil {
		return failure(err, "creating entry")
	}
	if !ok {
		return subcommands.ExitFailure
	}
	printID(t.ID)
	return subcommands.ExitSuccess
}
