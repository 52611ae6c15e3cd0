package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
)

type portfolioListCmd struct {
	id      string
	flatten bool
	all     bool
}

func (*portfolioListCmd) Name() string     { return "list" }
func (*portfolioListCmd) Synopsis() string { return "list portfolios" }
func (*portfolioListCmd) Usage() string {
	return `portfolio list [-id <portfolio>] [-f] [-a]

  Lists the root portfolios, or the portfolio given by -id.
`
}

func (c *portfolioListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the portfolio to list")
	f.BoolVar(&c.flatten, "f", false, "list the parent and the children of each portfolio too")
	f.BoolVar(&c.all, "a", false, "list all portfolios, not only the roots")
}

func (c *portfolioListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id != "" {
		if err := checkIDs([2]string{"id", c.id}); err != nil {
			return usage("%v", err)
		}
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	ps, err := client.Portfolios(ctx, api.PortfolioFilter{ID: c.id, ShowAll: c.all})
	if err != nil {
		return failure(err, "listing portfolios")
	}
	if c.flatten {
		var flat []*wellets.Portfolio
		for _, p := range ps {
			flat = append(flat, p.Flatten()...)
		}
		ps = flat
	}
	printMarkdown(renderer.Portfolios(ps))
	return subcommands.ExitSuccess
}

// portfolioFlags are the editable fields of a portfolio.
type portfolioFlags struct {
	alias   string
	weight  floatFlag
	parent  string
	wallets idList
	yes     bool
}

func (c *portfolioFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.alias, "alias", "", "name of the portfolio")
	f.Var(&c.weight, "weight", "weight in the parent portfolio, in percent (0 to 100)")
	f.StringVar(&c.parent, "parent", "", "id of the parent portfolio")
	f.Var(&c.wallets, "wallet", "id of a wallet in the portfolio; repeat or separate with commas")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *portfolioFlags) check() error {
	if c.weight.set {
		if err := wellets.ValidatePercent(c.weight.String()); err != nil {
			return fmt.Errorf("-weight: %w", err)
		}
	}
	if c.parent != "" {
		return checkIDs([2]string{"parent", c.parent})
	}
	return nil
}

// apply overrides r with the flags that were set.
func (c *portfolioFlags) apply(r *api.PortfolioRequest) {
	if c.alias != "" {
		r.Alias = c.alias
	}
	if c.weight.set {
		r.Weight = c.weight.v / 100
	}
	if c.parent != "" {
		r.ParentID = &c.parent
	}
	if len(c.wallets) > 0 {
		r.WalletIDs = c.wallets
	}
}

func describePortfolio(r api.PortfolioRequest) string {
	parent := "none"
	if r.ParentID != nil {
		parent = *r.ParentID
	}
	return fmt.Sprintf("%s weighing %s of parent %s with %d wallet(s)",
		r.Alias, wellets.PP(r.Weight, wellets.Percent(), wellets.WithSymbol()), parent, len(r.WalletIDs))
}

type portfolioCreateCmd struct {
	portfolioFlags
}

func (*portfolioCreateCmd) Name() string     { return "create" }
func (*portfolioCreateCmd) Synopsis() string { return "create a portfolio" }
func (*portfolioCreateCmd) Usage() string {
	return `portfolio create -alias <alias> -weight <percent> [-parent <portfolio>] [-wallet <wallet>...] [-y]

  Creates a portfolio and prints its id. The weight is the share of the
  portfolio in its parent.
`
}

func (c *portfolioCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := wellets.ValidateNotEmpty(c.alias); err != nil {
		return usage("-alias: %v", err)
	}
	if !c.weight.set {
		return usage("-weight is required")
	}
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	var r api.PortfolioRequest
	c.apply(&r)
	if r.WalletIDs == nil {
		r.WalletIDs = []string{}
	}
	if !confirm(c.yes, "Create portfolio %s?", describePortfolio(r)) {
		return subcommands.ExitFailure
	}
	p, err := client.CreatePortfolio(ctx, r)
	if err != nil {
		return failure(err, "creating portfolio")
	}
	printID(p.ID)
	return subcommands.ExitSuccess
}

type portfolioEditCmd struct {
	id string
	portfolioFlags
}

func (*portfolioEditCmd) Name() string     { return "edit" }
func (*portfolioEditCmd) Synopsis() string { return "edit a portfolio" }
func (*portfolioEditCmd) Usage() string {
	return `portfolio edit -id <portfolio> [-alias <alias>] [-weight <percent>] [-parent <portfolio>] [-wallet <wallet>...] [-y]

  Changes a portfolio. Unset flags keep the current values; -wallet replaces
  all the wallets of the portfolio.
`
}

func (c *portfolioEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the portfolio (required)")
	c.portfolioFlags.SetFlags(f)
}

func (c *portfolioEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	if c.parent == c.id {
		return usage("a portfolio cannot be its own parent")
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	p, err := client.Portfolio(ctx, c.id)
	if err != nil {
		return failure(err, "getting portfolio %s", c.id)
	}
	r := api.PortfolioRequest{Alias: p.Alias, Weight: p.Weight, ParentID: optional(p.ParentID), WalletIDs: []string{}}
	for _, w := range p.Wallets {
		r.WalletIDs = append(r.WalletIDs, w.ID)
	}
	c.apply(&r)
	if !confirm(c.yes, "Update portfolio %s?", describePortfolio(r)) {
		return subcommands.ExitFailure
	}
	p, err = client.UpdatePortfolio(ctx, c.id, r)
	if err != nil {
		return failure(err, "updating portfolio")
	}
	printID(p.ID)
	return subcommands.ExitSuccess
}

type portfolioDeleteCmd struct {
	id  string
	yes bool
}

func (*portfolioDeleteCmd) Name() string     { return "delete" }
func (*portfolioDeleteCmd) Synopsis() string { return "delete a portfolio" }
func (*portfolioDeleteCmd) Usage() string    { return "portfolio delete -id <portfolio> [-y]\n" }

func (c *portfolioDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the portfolio (required)")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *portfolioDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkIDs([2]string{"id", c.id}); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	if !confirm(c.yes, "Delete portfolio %s?", c.id) {
		return subcommands.ExitFailure
	}
	if err := client.DeletePortfolio(ctx, c.id); err != nil {
		return failure(err, "deleting portfolio")
	}
	printID(c.id)
	return subcommands.ExitSuccess
}

// portfolioID is the optional -id flag of the portfolio reports. Without it,
// the reports cover all the wallets.
type portfolioID struct {
	id string
}

func (c *portfolioID) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the portfolio; defaults to all portfolios")
}

func (c *portfolioID) check() error {
	if c.id == "" {
		return nil
	}
	return checkIDs([2]string{"id", c.id})
}

type portfolioBalanceCmd struct {
	portfolioID
}

func (*portfolioBalanceCmd) Name() string { return "balance" }
func (*portfolioBalanceCmd) Synopsis() string {
	return "show the balance of a portfolio in the preferred currency"
}
func (*portfolioBalanceCmd) Usage() string { return "portfolio balance [-id <portfolio>]\n" }

func (c *portfolioBalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	b, err := client.PortfolioBalance(ctx, c.id)
	if err != nil {
		return failure(err, "getting portfolio balance")
	}
	fmt.Fprintln(stdout, renderer.Balance(b))
	return subcommands.ExitSuccess
}

type portfolioRebalanceCmd struct {
	portfolioID
}

func (*portfolioRebalanceCmd) Name() string     { return "rebalance" }
func (*portfolioRebalanceCmd) Synopsis() string { return "show how to restore the portfolio weights" }
func (*portfolioRebalanceCmd) Usage() string {
	return `portfolio rebalance [-id <portfolio>]

  Shows, for each portfolio, the desired and current weights, and the amount
  to buy or sell to restore the desired weight. See "wellets topic rebalance".
`
}

func (c *portfolioRebalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(); err != nil {
		return usage("%v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	r, err := client.PortfolioRebalance(ctx, c.id)
	if err != nil {
		return failure(err, "getting portfolio rebalance")
	}
	printMarkdown(renderer.Rebalance(r))
	return subcommands.ExitSuccess
}
