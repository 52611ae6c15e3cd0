package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type transactionListCmd struct {
	wallet string
	limit  int
	page   int
}

func (*transactionListCmd) Name() string     { return "list" }
func (*transactionListCmd) Synopsis() string { return "list the transactions of a wallet" }
func (*transactionListCmd) Usage() string {
	return `transaction list -wallet <wallet> [-limit <n>] [-page <n>]

  Lists the transactions of a wallet, most recent first, with their value in
  the preferred currency.
`
}

func (c *transactionListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "wallet", "", "id of the wallet (required)")
	f.IntVar(&c.limit, "limit", 25, "number of transactions per page")
	f.IntVar(&c.page, "page", 1, "page to list, starting at 1")
}

func (c *transactionListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"wallet", c.wallet}); err != nil {
		return usage("%v", err)
	}
	if c.limit <= 0 || c.page <= 0 {
		return usage("-limit and -page must be greater than 0")
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		ts         []wellets.Transaction
		currencies []wellets.Currency
		base       wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ts, err = client.Transactions(gctx, api.TransactionFilter{WalletID: c.wallet, Limit: c.limit, Page: c.page})
		return err
	})
	g.Go(func() (err error) {
		currencies, base, err = references(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "listing transactions")
	}
	printMarkdown(renderer.Transactions(ts, currencies, base, renderOptions()))
	return subcommands.ExitSuccess
}

// transactionFlags describe a transaction to record on a wallet.
type transactionFlags struct {
	wallet      string
	value       floatFlag
	outcome     bool
	description string
	createdAt   string
	yes         bool
	rateFlags
}

func (c *transactionFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "wallet", "", "id of the wallet (required)")
	f.Var(&c.value, "value", "amount of the transaction, in the wallet's currency (required)")
	f.BoolVar(&c.outcome, "outcome", false, "record an outcome (sell) instead of an income (buy)")
	f.StringVar(&c.createdAt, "created-at", "", "date of the transaction (YYYY-MM-DD HH:MM); defaults to now")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
	c.rateFlags.SetFlags(f)
}

func (c *transactionFlags) check() error {
	if err := checkIDs([2]string{"wallet", c.wallet}); err != nil {
		return err
	}
	if !c.value.set {
		return errRequired("value")
	}
	if err := wellets.GreaterOrEqual(0)(c.value.String()); err != nil {
		return flagError("value", err)
	}
	if err := wellets.ValidateDate(c.createdAt); err != nil {
		return flagError("created-at", err)
	}
	return c.rateFlags.check()
}

// create records the transaction, optionally as an entry of an accumulation,
// after confirmation.
func (c *transactionFlags) create(ctx context.Context, client *api.Client, accumulationID *string) (wellets.Transaction, bool, error) {
	createdAt, err := parseCreatedAt(c.createdAt)
	if err != nil {
		return wellets.Transaction{}, false, err
	}
	var (
		w          wellets.Wallet
		currencies []wellets.Currency
		base       wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		w, err = client.Wallet(gctx, c.wallet)
		return err
	})
	g.Go(func() (err error) {
		currencies, base, err = references(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return wellets.Transaction{}, false, err
	}

	currency := renderer.WalletCurrency(w, currencies)
	rate, err := c.resolve(currencies, currency)
	if err != nil {
		return wellets.Transaction{}, false, err
	}
	value := c.value.v
	if c.outcome {
		value = -value
	}
	eq, err := wellets.Convert(rate, base.DollarRate, value)
	if err != nil {
		return wellets.Transaction{}, false, err
	}
	if !confirm(c.yes, "Confirm buy/sell of %s ~ %s?", wellets.FormatAmount(currency.Acronym, value), wellets.FormatAmount(base.Acronym, eq)) {
		return wellets.Transaction{}, false, nil
	}
	t, err := client.CreateTransaction(ctx, api.TransactionRequest{
		WalletID:       c.wallet,
		AccumulationID: accumulationID,
		Value:          value,
		DollarRate:     rate,
		Description:    c.description,
		CreatedAt:      createdAt,
	})
	return t, err == nil, err
}

type transactionCreateCmd struct {
	transactionFlags
	accumulation string
}

func (*transactionCreateCmd) Name() string     { return "create" }
func (*transactionCreateCmd) Synopsis() string { return "record an income or an outcome on a wallet" }
func (*transactionCreateCmd) Usage() string {
	return `transaction create -wallet <wallet> -value <amount> [-outcome] [-dollar-rate <rate> | -change-currency <acronym|id> -change <value>] [-description <text>] [-accumulation <accumulation>] [-created-at <YYYY-MM-DD HH:MM>] [-y]

  Records a transaction and prints its id.

  The dollar rate of the transaction defaults to the current rate of the
  wallet's currency. It can be given directly with -dollar-rate, or as the
  value of one unit of the wallet's currency in another currency, e.g.
  "-change-currency EUR -change 52000" for a BTC wallet.
`
}

func (c *transactionCreateCmd) SetFlags(f *flag.FlagSet) {
	c.transactionFlags.SetFlags(f)
	f.StringVar(&c.description, "description", "Buy", "description of the transaction")
	f.StringVar(&c.accumulation, "accumulation", "", "id of the accumulation the transaction is an entry of")
}

func (c *transactionCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	if c.accumulation != "" {
		if err := checkIDs([2]string{"accumulation", c.accumulation}); err != nil {
			return usage("%v", err)
		}
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	t, ok, err := c.create(ctx, client, optional(c.accumulation))
	if err != nil {
		return failure(err, "creating transaction")
	}
	if !ok {
		return subcommands.ExitFailure
	}
	printID(t.ID)
	return subcommands.ExitSuccess
}

type transactionRevertCmd struct {
	id string
}

func (*transactionRevertCmd) Name() string     { return "revert" }
func (*transactionRevertCmd) Synopsis() string { return "revert a transaction" }
func (*transactionRevertCmd) Usage() string {
	return `transaction revert -id <transaction>

  Records the opposite of a transaction, and prints the id of the new one.
`
}

func (c *transactionRevertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the transaction (required)")
}

func (c *transactionRevertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	t, err := client.RevertTransaction(ctx, c.id)
	if err != nil {
		return failure(err, "reverting transaction")
	}
	printID(t.ID)
	return subcommands.ExitSuccess
}
