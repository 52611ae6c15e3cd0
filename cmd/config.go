package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/wellets/config"
	"github.com/etnz/wellets/renderer"
	"github.com/go-kit/log/level"
	"github.com/google/subcommands"
)

// manager returns the configuration registry, the preferred currency being
// read and written on the server.
func manager() (*config.Manager, error) {
	c, err := Config()
	if err != nil {
		return nil, err
	}
	get := func(ctx context.Context) (string, error) {
		client, err := newClient(true)
		if err != nil {
			return "", err
		}
		currency, err := client.PreferredCurrency(ctx)
		return currency.Acronym, err
	}
	set := func(ctx context.Context, value string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}
		currencies, err := client.Currencies(ctx)
		if err != nil {
			return err
		}
		currency, err := currencyOf(currencies, value)
		if err != nil {
			return err
		}
		_, err = client.SetPreferredCurrency(ctx, currency.ID)
		return err
	}
	return config.NewManager(c, get, set), nil
}

type configShowCmd struct{}

func (*configShowCmd) Name() string             { return "show" }
func (*configShowCmd) Synopsis() string         { return "show the configuration" }
func (*configShowCmd) Usage() string            { return "config show [<key>...]\n" }
func (*configShowCmd) SetFlags(f *flag.FlagSet) {}

func (c *configShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := manager()
	if err != nil {
		return failure(err, "loading configuration")
	}
	entries := m.Entries()
	if f.NArg() > 0 {
		entries = entries[:0:0]
		for _, key := range f.Args() {
			e, ok := m.Entry(key)
			if !ok {
				return usage("%v: %q", config.ErrUnknownKey, key)
			}
			entries = append(entries, e)
		}
	}

	rows := make([]renderer.ConfigRow, len(entries))
	for i, e := range entries {
		v, err := e.Display(ctx)
		if err != nil {
			level.Warn(Logger()).Log("msg", "cannot read configuration", "key", e.Key, "err", err)
		}
		rows[i] = renderer.ConfigRow{Key: e.Key, Value: v, Description: e.Description}
	}
	printMarkdown(renderer.Config(rows))
	return subcommands.ExitSuccess
}

type configSetCmd struct {
	currency string
}

func (*configSetCmd) Name() string     { return "set" }
func (*configSetCmd) Synopsis() string { return "change a configuration key" }
func (*configSetCmd) Usage() string {
	return `config set -currency <acronym|id> <key>

  Changes a settable configuration key. Settable keys are:
  - user-settings.preferred-currency: the currency countervalues are computed in.

  Flags come before the key, e.g. "config set -currency EUR user-settings.preferred-currency".
`
}

func (c *configSetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "acronym (e.g. USD) or id of the currency")
}

func (c *configSetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one key")
	}
	key := f.Arg(0)
	m, err := manager()
	if err != nil {
		return failure(err, "loading configuration")
	}
	e, ok := m.Entry(key)
	if !ok {
		return usage("%v: %q", config.ErrUnknownKey, key)
	}
	if !e.Settable {
		return usage("%v, settable keys are: %s", config.ErrNotSettable, strings.Join(m.Keys(config.Filter{Settable: true}), ", "))
	}
	if c.currency == "" {
		return usage("-currency is required")
	}
	if err := e.SetValue(ctx, c.currency); err != nil {
		return failure(err, "setting %s", key)
	}
	fmt.Fprintf(stdout, "✅ %s set to %s.\n", key, c.currency)
	return subcommands.ExitSuccess
}
