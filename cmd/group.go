package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/google/subcommands"
)

// groupCmd is a command made of subcommands, e.g. "wallet list".
type groupCmd struct {
	name     string
	synopsis string
	commands []subcommands.Command
}

func (g *groupCmd) Name() string     { return g.name }
func (g *groupCmd) Synopsis() string { return g.synopsis }
func (g *groupCmd) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <subcommand> [flags]\n\n  %s.\n\nSubcommands:\n", g.name, g.synopsis)
	for _, c := range g.commands {
		fmt.Fprintf(&b, "\t%-20s %s\n", c.Name(), c.Synopsis())
	}
	return b.String()
}

func (g *groupCmd) SetFlags(*flag.FlagSet) {}

// commander returns a commander of the group's subcommands, parsing args.
func (g *groupCmd) commander(args []string) (*subcommands.Commander, error) {
	fs := flag.NewFlagSet(g.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := subcommands.NewCommander(fs, path.Base(os.Args[0])+" "+g.name)
	c.Output = stdout
	c.Error = stderr
	c.Register(c.HelpCommand(), "")
	for _, sub := range g.commands {
		c.Register(sub, "")
	}
	return c, fs.Parse(args)
}

func (g *groupCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(stderr, g.Usage())
		return subcommands.ExitUsageError
	}
	c, err := g.commander(f.Args())
	if err != nil {
		return subcommands.ExitUsageError
	}
	return c.Execute(ctx, args...)
}

func groups() []*groupCmd {
	return []*groupCmd{
		{
			name:     "config",
			synopsis: "show and change the configuration",
			commands: []subcommands.Command{&configShowCmd{}, &configSetCmd{}},
		},
		{
			name:     "currency",
			synopsis: "list currencies and their rates",
			commands: []subcommands.Command{&currencyListCmd{}, &currencyHistoryCmd{}},
		},
		{
			name:     "wallet",
			synopsis: "manage wallets",
			commands: []subcommands.Command{
				&walletListCmd{}, &walletCreateCmd{}, &walletEditCmd{}, &walletDeleteCmd{},
				&walletShowCmd{}, &walletBalanceCmd{}, &walletSetBalanceCmd{},
				&walletAverageLoadPriceCmd{}, &walletTotalBalanceCmd{}, &walletHistoryCmd{},
			},
		},
		{
			name:     "portfolio",
			synopsis: "manage portfolios and rebalance them",
			commands: []subcommands.Command{
				&portfolioListCmd{}, &portfolioCreateCmd{}, &portfolioEditCmd{}, &portfolioDeleteCmd{},
				&portfolioBalanceCmd{}, &portfolioRebalanceCmd{},
			},
		},
		{
			name:     "transaction",
			synopsis: "record incomes and outcomes of wallets",
			commands: []subcommands.Command{&transactionListCmd{}, &transactionCreateCmd{}, &transactionRevertCmd{}},
		},
		{
			name:     "transfer",
			synopsis: "move money between wallets",
			commands: []subcommands.Command{&transferCreateCmd{}},
		},
		{
			name:     "accumulation",
			synopsis: "plan periodic buys of an asset",
			commands: []subcommands.Command{
				&accumulationListCmd{}, &accumulationShowCmd{}, &accumulationNextEntryCmd{},
				&accumulationCreateCmd{}, &accumulationDeleteCmd{}, &accumulationCreateEntryCmd{},
			},
		},
		{
			name:     "asset",
			synopsis: "show assets, their balance and their gains",
			commands: []subcommands.Command{
				&assetListCmd{}, &assetBalanceCmd{}, &assetTotalBalanceCmd{}, &assetExpositionCmd{},
				&assetAllocationCmd{}, &assetEntriesCmd{}, &assetHistoryCmd{}, &assetCapitalGainCmd{},
			},
		},
		{
			name:     "investment",
			synopsis: "track closed-ended investments",
			commands: []subcommands.Command{&investmentListCmd{}, &investmentCreateCmd{}},
		},
	}
}
