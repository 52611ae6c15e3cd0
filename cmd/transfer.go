package cmd

import (
	"context"
	"errors"
	"flag"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/google/subcommands"
)

type transferCreateCmd struct {
	from          string
	to            string
	value         floatFlag
	max           bool
	percentualFee float64
	staticFee     float64
	yes           bool
}

func (*transferCreateCmd) Name() string     { return "create" }
func (*transferCreateCmd) Synopsis() string { return "move money from a wallet to another" }
func (*transferCreateCmd) Usage() string {
	return `transfer create -from <wallet> -to <wallet> (-value <amount> | -m) [-percentual-fee <percent>] [-static-fee <amount>] [-y]

  Transfers an amount of the source wallet's currency to another wallet, and
  prints the id of the transfer. Fees are charged on the source wallet: the
  percentual fee is a percentage of the value, the static fee is an amount.
`
}

func (c *transferCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "id of the source wallet (required)")
	f.StringVar(&c.to, "to", "", "id of the destination wallet (required)")
	f.Var(&c.value, "value", "amount to transfer, in the source wallet's currency")
	f.BoolVar(&c.max, "m", false, "transfer the whole balance of the source wallet")
	f.Float64Var(&c.percentualFee, "percentual-fee", 0, "fee in percent of the value")
	f.Float64Var(&c.staticFee, "static-fee", 0, "fixed fee, in the source wallet's currency")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *transferCreateCmd) check() error {
	if err := checkIDs([2]string{"from", c.from}, [2]string{"to", c.to}); err != nil {
		return err
	}
	if c.from == c.to {
		return errors.New("-from and -to must be different wallets")
	}
	if c.value.set == c.max {
		return errors.New("exactly one of -value or -m is required")
	}
	if c.value.set {
		if err := wellets.GreaterThan(0)(c.value.String()); err != nil {
			return flagError("value", err)
		}
	}
	if c.staticFee < 0 {
		return flagError("static-fee", errors.New("must not be negative"))
	}
	return nil
}

// request returns the transfer of value, with the percentual fee as a fraction.
func (c *transferCreateCmd) request(value float64) api.TransferRequest {
	return api.TransferRequest{
		FromWalletID:  c.from,
		ToWalletID:    c.to,
		PercentualFee: c.percentualFee / 100,
		StaticFee:     c.staticFee,
		Value:         value,
	}
}

func (c *transferCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	from, err := client.Wallet(ctx, c.from)
	if err != nil {
		return failure(err, "getting wallet %s", c.from)
	}
	value := c.value.v
	if c.max {
		value = from.Balance
	}
	r := c.request(value)
	acronym := "?"
	if from.Currency != nil {
		acronym = from.Currency.Acronym
	}
	if !confirm(c.yes, "Transfer %s from %s (fees: %s + %s)?",
		wellets.FormatAmount(acronym, r.Value), from.Alias,
		wellets.PP(r.PercentualFee, wellets.Percent(), wellets.Loose(), wellets.WithSymbol()),
		wellets.FormatAmount(acronym, r.StaticFee)) {
		return subcommands.ExitFailure
	}
	t, err := client.CreateTransfer(ctx, r)
	if err != nil {
		return failure(err, "creating transfer")
	}
	printID(t.ID)
	return subcommands.ExitSuccess
}
