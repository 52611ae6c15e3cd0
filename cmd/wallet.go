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

type walletListCmd struct {
	compact bool
}

func (*walletListCmd) Name() string     { return "list" }
func (*walletListCmd) Synopsis() string { return "list wallets with their countervalue" }
func (*walletListCmd) Usage() string {
	return `wallet list [-c]

  Lists all wallets, with their balance converted in the preferred currency.
`
}

func (c *walletListCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.compact, "c", false, "compact output, without descriptions")
}

func (c *walletListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		wallets    []wellets.Wallet
		currencies []wellets.Currency
		base       wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wallets, err = client.Wallets(gctx)
		return err
	})
	g.Go(func() (err error) {
		currencies, base, err = references(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "listing wallets")
	}
	printMarkdown(renderer.Wallets(wallets, currencies, base, c.compact, renderOptions()))
	return subcommands.ExitSuccess
}

type walletCreateCmd struct {
	alias       string
	description string
	currency    string
}

func (*walletCreateCmd) Name() string     { return "create" }
func (*walletCreateCmd) Synopsis() string { return "create a wallet" }
func (*walletCreateCmd) Usage() string {
	return `wallet create -alias <alias> -currency <acronym|id> [-description <text>]

  Creates an empty wallet in a currency, and prints its id.
`
}

func (c *walletCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.alias, "alias", "", "name of the wallet (required)")
	f.StringVar(&c.description, "description", "", "free text description")
	f.StringVar(&c.currency, "currency", "", "acronym (e.g. EUR) or id of the wallet's currency (required)")
}

func (c *walletCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := wellets.ValidateNotEmpty(c.alias); err != nil {
		return usage("-alias: %v", err)
	}
	if c.currency == "" {
		return usage("-currency is required")
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
	w, err := client.CreateWallet(ctx, api.CreateWalletRequest{
		Alias:       c.alias,
		Description: optional(c.description),
		CurrencyID:  currency.ID,
	})
	if err != nil {
		return failure(err, "creating wallet")
	}
	printID(w.ID)
	return subcommands.ExitSuccess
}

// optional returns nil for the empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type walletEditCmd struct {
	id          string
	alias       string
	description string
	balance     floatFlag
	yes         bool
}

func (*walletEditCmd) Name() string     { return "edit" }
func (*walletEditCmd) Synopsis() string { return "edit a wallet" }
func (*walletEditCmd) Usage() string {
	return `wallet edit -id <wallet> [-alias <alias>] [-description <text>] [-balance <amount>] [-y]

  Changes the alias, description or balance of a wallet. Unset flags keep the
  current values.

  Changing the balance directly may result in inconsistent data: prefer
  "wallet set-balance", which records a transaction.
`
}

func (c *walletEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
	f.StringVar(&c.alias, "alias", "", "new name of the wallet")
	f.StringVar(&c.description, "description", "", "new description")
	f.Var(&c.balance, "balance", "new balance, without transaction")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *walletEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	w, err := client.Wallet(ctx, c.id)
	if err != nil {
		return failure(err, "getting wallet %s", c.id)
	}

	r := api.UpdateWalletRequest{Alias: w.Alias, Description: optional(w.Description), Balance: w.Balance}
	if c.alias != "" {
		r.Alias = c.alias
	}
	if c.description != "" {
		r.Description = &c.description
	}
	if c.balance.set {
		r.Balance = c.balance.v
		warning.Fprintln(stderr, "Warning: changing the wallet balance may result in inconsistent data.")
	}
	if !confirm(c.yes, "Update wallet %s?", w.Alias) {
		return subcommands.ExitFailure
	}
	w, err = client.UpdateWallet(ctx, c.id, r)
	if err != nil {
		return failure(err, "updating wallet")
	}
	printID(w.ID)
	return subcommands.ExitSuccess
}

type walletDeleteCmd struct {
	id  string
	yes bool
}

func (*walletDeleteCmd) Name() string     { return "delete" }
func (*walletDeleteCmd) Synopsis() string { return "delete a wallet and its transactions" }
func (*walletDeleteCmd) Usage() string {
	return `wallet delete -id <wallet> [-y]

  Deletes a wallet. This is irreversible: all the transactions of the wallet
  are deleted too.
`
}

func (c *walletDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *walletDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	warning.Fprintln(stderr, "This action is irreversible and will delete all transactions associated with the wallet.")
	if !confirm(c.yes, "Delete wallet %s?", c.id) {
		return subcommands.ExitFailure
	}
	w, err := client.DeleteWallet(ctx, c.id)
	if err != nil {
		return failure(err, "deleting wallet")
	}
	printID(w.ID)
	return subcommands.ExitSuccess
}

type walletShowCmd struct {
	id string
}

func (*walletShowCmd) Name() string     { return "show" }
func (*walletShowCmd) Synopsis() string { return "show a wallet" }
func (*walletShowCmd) Usage() string    { return "wallet show -id <wallet>\n" }

func (c *walletShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
}

func (c *walletShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var (
		w          wellets.Wallet
		currencies []wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		w, err = client.Wallet(gctx, c.id)
		return err
	})
	g.Go(func() (err error) {
		currencies, err = client.Currencies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting wallet %s", c.id)
	}
	printMarkdown(renderer.Wallet(w, currencies, renderOptions()))
	return subcommands.ExitSuccess
}

type walletBalanceCmd struct {
	id string
}

func (*walletBalanceCmd) Name() string     { return "balance" }
func (*walletBalanceCmd) Synopsis() string { return "show the balance of a wallet" }
func (*walletBalanceCmd) Usage() string    { return "wallet balance -id <wallet>\n" }

func (c *walletBalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
}

func (c *walletBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	b, err := client.WalletBalance(ctx, c.id)
	if err != nil {
		return failure(err, "getting wallet balance")
	}
	fmt.Fprintln(stdout, renderer.Balance(b))
	return subcommands.ExitSuccess
}

type walletSetBalanceCmd struct {
	id          string
	balance     floatFlag
	description string
	createdAt   string
	yes         bool
	rateFlags
}

func (*walletSetBalanceCmd) Name() string     { return "set-balance" }
func (*walletSetBalanceCmd) Synopsis() string { return "set the balance of a wallet with a transaction" }
func (*walletSetBalanceCmd) Usage() string {
	return `wallet set-balance -id <wallet> -balance <amount> [-dollar-rate <rate> | -change-currency <acronym|id> -change <value>] [-description <text>] [-created-at <YYYY-MM-DD HH:MM>] [-y]

  Records a transaction of the difference between the new balance and the
  current balance of the wallet.
`
}

func (c *walletSetBalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
	f.Var(&c.balance, "balance", "new balance (required)")
	f.StringVar(&c.description, "description", "Balance change", "description of the transaction")
	f.StringVar(&c.createdAt, "created-at", "", "date of the transaction; defaults to now")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
	c.rateFlags.SetFlags(f)
}

func (c *walletSetBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	if !c.balance.set || c.balance.v < 0 {
		return usage("-balance is required and must be greater or equal than 0")
	}
	if err := c.rateFlags.check(); err != nil {
		return usage("%v", err)
	}
	createdAt, err := parseCreatedAt(c.createdAt)
	if err != nil {
		return usage("-created-at: %v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}

	var w wellets.Wallet
	var currencies []wellets.Currency
	var base wellets.Currency
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		w, err = client.Wallet(gctx, c.id)
		return err
	})
	g.Go(func() (err error) {
		currencies, base, err = references(gctx, client)
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting wallet %s", c.id)
	}

	currency := renderer.WalletCurrency(w, currencies)
	rate, err := c.resolve(currencies, currency)
	if err != nil {
		return failure(err, "computing dollar rate")
	}
	value := c.balance.v - w.Balance

	msg, err := balanceChange(currency, base, rate, w.Balance, c.balance.v)
	if err != nil {
		return failure(err, "converting balance")
	}
	if !confirm(c.yes, "Confirm buy/sell of %s", msg) {
		return subcommands.ExitFailure
	}
	_, err = client.CreateTransaction(ctx, api.TransactionRequest{
		WalletID:    c.id,
		Value:       value,
		DollarRate:  rate,
		Description: c.description,
		CreatedAt:   createdAt,
	})
	if err != nil {
		return failure(err, "creating transaction")
	}
	printID(c.id)
	return subcommands.ExitSuccess
}

// balanceChange describes a balance change from prev to next, each amount
// being followed by its value in base at the transaction rate, e.g.
// "BTC 0.10 ~ USD 2,000.00 (BTC 0.00 ~ USD 0.00 -> BTC 0.10 ~ USD 2,000.00)".
func balanceChange(c, base wellets.Currency, rate, prev, next float64) (string, error) {
	amount := func(v float64) (string, error) {
		eq, err := wellets.Convert(rate, base.DollarRate, v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s ~ %s %s", c.Acronym, wellets.PP(v), base.Acronym, wellets.PP(eq)), nil
	}
	diff, err := amount(next - prev)
	if err != nil {
		return "", err
	}
	from, err := amount(prev)
	if err != nil {
		return "", err
	}
	to, err := amount(next)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s -> %s)", diff, from, to), nil
}

type walletAverageLoadPriceCmd struct {
	id string
}

func (*walletAverageLoadPriceCmd) Name() string { return "average-load-price" }
func (*walletAverageLoadPriceCmd) Synopsis() string {
	return "show the average price paid for a wallet's currency"
}
func (*walletAverageLoadPriceCmd) Usage() string { return "wallet average-load-price -id <wallet>\n" }

func (c *walletAverageLoadPriceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
}

func (c *walletAverageLoadPriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	p, err := client.WalletAverageLoadPrice(ctx, c.id)
	if err != nil {
		return failure(err, "getting average load price")
	}
	fmt.Fprintln(stdout, renderer.AverageLoadPrice(p.AverageLoadPrice, p.BaseCurrency))
	return subcommands.ExitSuccess
}

type walletTotalBalanceCmd struct{}

func (*walletTotalBalanceCmd) Name() string             { return "total-balance" }
func (*walletTotalBalanceCmd) Synopsis() string         { return "show the sum of all wallets' balance" }
func (*walletTotalBalanceCmd) Usage() string            { return "wallet total-balance\n" }
func (*walletTotalBalanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *walletTotalBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	b, err := client.WalletsTotalBalance(ctx)
	if err != nil {
		return failure(err, "getting total balance")
	}
	fmt.Fprintln(stdout, renderer.Balance(b))
	return subcommands.ExitSuccess
}

type walletHistoryCmd struct {
	id string
	historyFlags
}

func (*walletHistoryCmd) Name() string     { return "history" }
func (*walletHistoryCmd) Synopsis() string { return "show the balance history of a wallet" }
func (*walletHistoryCmd) Usage() string {
	return `wallet history -id <wallet> [-interval 1d|1w] [-start <day>] [-end <day>] [-days <n>]

  Shows the balance of a wallet sampled over a range of days.
`
}

func (c *walletHistoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the wallet (required)")
	c.historyFlags.SetFlags(f)
}

func (c *walletHistoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
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
		w          wellets.Wallet
		currencies []wellets.Currency
		points     []wellets.HistoryPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		w, err = client.Wallet(gctx, c.id)
		return err
	})
	g.Go(func() (err error) {
		currencies, err = client.Currencies(gctx)
		return err
	})
	g.Go(func() (err error) {
		points, err = client.WalletHistory(gctx, api.HistoryQuery{ID: c.id, Range: r, Interval: c.interval})
		return err
	})
	if err := g.Wait(); err != nil {
		return failure(err, "getting wallet history")
	}
	acronym := renderer.WalletCurrency(w, currencies).Acronym
	title := fmt.Sprintf("%s history %s", w.Alias, r)
	printMarkdown(renderer.BalanceHistory(title, acronym, wellets.BalanceHistory(points), renderOptions()))
	return subcommands.ExitSuccess
}
