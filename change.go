package wellets

import (
	"errors"
	"fmt"
)

// Dollar rates are expressed as units of a currency for one dollar (e.g. 5.2 for
// BRL, 1 for USD). An amount in currency A is worth amount/rateA dollars, hence
// amount*rateB/rateA units of currency B.

// ErrDivisionByZero is returned when a conversion involves a zero rate.
// Rates come from the backend and are never validated for positivity.
var ErrDivisionByZero = errors.New("division by zero")

// ConversionFactor returns rateA / rateB.
func ConversionFactor(rateA, rateB float64) (float64, error) {
	if rateB == 0 {
		return 0, fmt.Errorf("conversion factor %v/%v: %w", rateA, rateB, ErrDivisionByZero)
	}
	return rateA / rateB, nil
}

// Convert returns the amount of currency B (at rateB) that has the same dollar
// value as amount of currency A (at rateA): amount / ConversionFactor(rateA, rateB).
func Convert(rateA, rateB, amount float64) (float64, error) {
	factor, err := ConversionFactor(rateA, rateB)
	if err != nil {
		return 0, err
	}
	if factor == 0 {
		return 0, fmt.Errorf("convert %v at rate %v into rate %v: %w", amount, rateA, rateB, ErrDivisionByZero)
	}
	return amount / factor, nil
}

// ConvertTo converts an amount of c into the currency to.
func (c Currency) ConvertTo(to Currency, amount float64) (float64, error) {
	v, err := Convert(c.DollarRate, to.DollarRate, amount)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s into %s: %w", c.Acronym, to.Acronym, err)
	}
	return v, nil
}

// ChangeValue returns how many units of target one unit of source is worth.
// It is the default value proposed when a transaction rate is given as a change
// against another currency.
func ChangeValue(source, target Currency) (float64, error) {
	return source.ConvertTo(target, 1)
}

// DollarRateFromChange returns the dollar rate of a currency worth change units
// of target, i.e. "1 source = change target".
func DollarRateFromChange(change float64, target Currency) (float64, error) {
	if change == 0 {
		return 0, fmt.Errorf("dollar rate from a change of 0 %s: %w", target.Acronym, ErrDivisionByZero)
	}
	return target.DollarRate / change, nil
}

// EntryValuation values an asset entry in a reference currency.
type EntryValuation struct {
	BuyPrice   float64 // price of one unit when bought
	BuyAmount  float64 // amount paid for the entry
	Equivalent float64 // current worth of the entry
	Profit     float64 // (Equivalent - BuyAmount) / BuyAmount
}

// ValueEntry values an entry of an asset held in currency asset, in currency in.
// The buy price uses the dollar rate recorded with the entry, the
// equivalent uses the current rate of the asset currency.
func ValueEntry(asset Currency, e AssetEntry, in Currency) (EntryValuation, error) {
	var v EntryValuation
	var err error
	if v.Equivalent, err = asset.ConvertTo(in, e.Value); err != nil {
		return v, err
	}
	if v.BuyPrice, err = Convert(e.DollarRate, in.DollarRate, 1); err != nil {
		return v, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if v.BuyAmount, err = Convert(e.DollarRate, in.DollarRate, e.Value); err != nil {
		return v, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	base := v.BuyAmount
	if base == 0 {
		base = 1
	}
	v.Profit = (v.Equivalent - v.BuyAmount) / base
	return v, nil
}
