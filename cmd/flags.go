package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/date"
	"golang.org/x/sync/errgroup"
)

func errRequired(name string) error { return fmt.Errorf("-%s is required", name) }

func flagError(name string, err error) error { return fmt.Errorf("-%s: %w", name, err) }

// checkIDs validates the value of every named id flag. Empty values are
// reported as missing.
func checkIDs(flags ...[2]string) error {
	for _, f := range flags {
		name, value := f[0], f[1]
		if value == "" {
			return errRequired(name)
		}
		if err := wellets.ValidateUUID(value); err != nil {
			return fmt.Errorf("-%s %q: %w", name, value, err)
		}
	}
	return nil
}

// idList is a repeatable flag of UUIDs. Each value may hold several
// comma separated ids.
type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }

func (l *idList) Set(s string) error {
	ids := strings.Split(s, ",")
	if err := wellets.Each(wellets.ValidateUUID, ids...); err != nil {
		return err
	}
	*l = append(*l, ids...)
	return nil
}

// floatFlag is a float flag that knows whether it was set.
type floatFlag struct {
	v   float64
	set bool
}

func (f *floatFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatFloat(f.v, 'f', -1, 64)
}

func (f *floatFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New(wellets.MsgNumber)
	}
	f.v, f.set = v, true
	return nil
}

// currencyOf resolves a currency given by acronym (case insensitive) or by id.
func currencyOf(currencies []wellets.Currency, s string) (wellets.Currency, error) {
	if c, ok := wellets.CurrencyByID(currencies, s); ok {
		return c, nil
	}
	if c, ok := wellets.CurrencyByAcronym(currencies, strings.ToUpper(s)); ok {
		return c, nil
	}
	return wellets.Currency{}, fmt.Errorf("unknown currency %q", s)
}

// rateFlags are the flags giving the dollar rate of a transaction: either
// directly with -dollar-rate, or as a change against another currency.
type rateFlags struct {
	dollarRate     float64
	changeCurrency string
	change         float64
}

func (r *rateFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&r.dollarRate, "dollar-rate", 0, "dollar rate of the transaction; defaults to the wallet's currency rate")
	f.StringVar(&r.changeCurrency, "change-currency", "", "acronym or id of the currency the -change value is expressed in")
	f.Float64Var(&r.change, "change", 0, "value of one unit of the wallet's currency in -change-currency")
}

func (r *rateFlags) check() error {
	switch {
	case r.dollarRate < 0:
		return errors.New("-dollar-rate must not be negative")
	case r.dollarRate != 0 && r.changeCurrency != "":
		return errors.New("-dollar-rate and -change-currency are exclusive")
	case r.changeCurrency != "" && r.change <= 0:
		return errors.New("-change must be greater than 0")
	}
	return nil
}

// resolve returns the dollar rate to record for a transaction in currency c.
func (r *rateFlags) resolve(currencies []wellets.Currency, c wellets.Currency) (float64, error) {
	if r.dollarRate != 0 {
		return r.dollarRate, nil
	}
	if r.changeCurrency == "" {
		return c.DollarRate, nil
	}
	target, err := currencyOf(currencies, r.changeCurrency)
	if err != nil {
		return 0, err
	}
	return wellets.DollarRateFromChange(r.change, target)
}

// parseCreatedAt parses a -created-at flag, defaulting to now.
func parseCreatedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return date.ParseDateTime(s)
}

// historyFlags select the range and sampling of a history.
type historyFlags struct {
	interval date.Interval
	start    string
	end      string
	days     int
}

func (h *historyFlags) SetFlags(f *flag.FlagSet) {
	f.Var(&h.interval, "interval", "sampling interval: "+strings.Join(date.Intervals, " or "))
	f.StringVar(&h.start, "start", "", "first day of the history (YYYY-MM-DD); defaults to -days before -end")
	f.StringVar(&h.end, "end", "", "last day of the history (YYYY-MM-DD); defaults to today")
	f.IntVar(&h.days, "days", 30, "number of days of history when -start is not set")
}

func (h *historyFlags) dateRange() (date.Range, error) {
	end := date.Today()
	if h.end != "" {
		d, err := date.Parse(h.end)
		if err != nil {
			return date.Range{}, err
		}
		end = d
	}
	if h.start == "" {
		if h.days <= 0 {
			return date.Range{}, errors.New("-days must be greater than 0")
		}
		return date.LastDays(end, h.days), nil
	}
	return date.ParseRange(h.start, end.String())
}

// references fetches the currencies and the user's preferred currency
// concurrently. The dollar is the preferred currency when none is set.
func references(ctx context.Context, client *api.Client) ([]wellets.Currency, wellets.Currency, error) {
	var (
		currencies []wellets.Currency
		preferred  wellets.Currency
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		currencies, err = client.Currencies(gctx)
		return err
	})
	g.Go(func() (err error) {
		preferred, err = client.PreferredCurrency(gctx)
		if api.IsNotFound(err) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wellets.Currency{}, err
	}
	if preferred.Acronym != "" {
		return currencies, preferred, nil
	}
	if usd, ok := wellets.CurrencyByAcronym(currencies, "USD"); ok {
		return currencies, usd, nil
	}
	return currencies, wellets.Currency{Acronym: "USD", DollarRate: 1}, nil
}
