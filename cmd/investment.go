package cmd

import (
	"context"
	"flag"
	"slices"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/renderer"
	"github.com/google/subcommands"
)

var investmentStatuses = []string{wellets.InvestmentCreated, wellets.InvestmentStarted, wellets.InvestmentClosed}

type investmentListCmd struct {
	status string
}

func (*investmentListCmd) Name() string     { return "list" }
func (*investmentListCmd) Synopsis() string { return "list investments" }
func (*investmentListCmd) Usage() string    { return "investment list [-status created|started|closed]\n" }

func (c *investmentListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "", "only list the investments in this status")
}

func (c *investmentListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.status != "" && !slices.Contains(investmentStatuses, c.status) {
		return usage("unknown status %q", c.status)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	is, err := client.Investments(ctx, c.status)
	if err != nil {
		return failure(err, "listing investments")
	}
	printMarkdown(renderer.Investments(is, renderOptions()))
	return subcommands.ExitSuccess
}

type investmentCreateCmd struct {
	alias string
}

func (*investmentCreateCmd) Name() string     { return "create" }
func (*investmentCreateCmd) Synopsis() string { return "create an investment" }
func (*investmentCreateCmd) Usage() string    { return "investment create -alias <alias>\n" }

func (c *investmentCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.alias, "alias", "", "name of the investment (required)")
}

func (c *investmentCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := wellets.ValidateNotEmpty(c.alias); err != nil {
		return usage("-alias: %v", err)
	}
	client, err := newClient(true)
	if err != nil {
		return failure(err, "creating client")
	}
	i, err := client.Investments(ctx, "")
	if err != nil {
		return failure(err, "listing investments")
	}
	if _, dup := wellets.Find(i, func(x wellets.Investment) bool { return x.Alias == c.alias }); dup {
		warning.Fprintf(stderr, "An investment named %q already exists.\n", c.alias)
	}
	created, err := client.CreateInvestment(ctx, c.alias)
	if err != nil {
		return failure(err, "creating investment")
	}
	printID(created.ID)
	return subcommands.ExitSuccess
}
