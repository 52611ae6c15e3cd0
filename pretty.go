package wellets

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

type ppOptions struct {
	decimals   int32
	percent    bool
	fixed      bool
	withSymbol bool
}

// PPOption customizes PP.
type PPOption func(*ppOptions)

// Decimals sets the number of decimals (2 by default).
func Decimals(n int) PPOption { return func(o *ppOptions) { o.decimals = int32(n) } }

// Percent renders a fraction as a percentage (0.5 is "50.00").
func Percent() PPOption { return func(o *ppOptions) { o.percent = true } }

// Loose trims trailing zeros of the fractional part.
func Loose() PPOption { return func(o *ppOptions) { o.fixed = false } }

// WithSymbol appends "%" to percentages.
func WithSymbol() PPOption { return func(o *ppOptions) { o.withSymbol = true } }

var thousands = money.NewFormatter(0, ".", ",", "", "1")

// PP pretty prints a number with thousands separators, rounded half away from zero.
func PP(v float64, opts ...PPOption) string {
	o := ppOptions{decimals: 2, fixed: true}
	for _, opt := range opts {
		opt(&o)
	}

	d := decimal.NewFromFloat(v)
	if o.percent {
		d = d.Shift(2)
	}
	d = d.Round(o.decimals)
	neg := d.IsNegative()
	d = d.Abs()

	s := thousands.Format(d.IntPart())
	if o.decimals > 0 {
		fixed := d.StringFixed(o.decimals)
		s += fixed[strings.IndexByte(fixed, '.'):]
		if !o.fixed {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
	}
	if neg {
		s = "-" + s
	}
	if o.percent && o.withSymbol {
		s += "%"
	}
	return s
}

// FormatAmount renders an amount prefixed with its currency acronym, e.g. "USD 1,234.50".
// ISO currencies use their own number of decimals, other currencies (crypto
// mostly) are rendered with up to 8 decimals.
func FormatAmount(acronym string, v float64) string {
	if c := money.GetCurrency(acronym); c != nil {
		return acronym + " " + PP(v, Decimals(c.Fraction))
	}
	return acronym + " " + PP(v, Decimals(8), Loose())
}
