// Package exchange converts money between the supported account currencies.
//
// All conversions round once, to two decimal places, half away from zero.
// Amounts handled by the ledger are positive, so this is round-half-up.
package exchange

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

// Places is the number of decimal places every converted amount is rounded to.
const Places = 2

// pairRatePlaces is the precision pair rates are derived with.
const pairRatePlaces = 10

// ErrUnknownCurrencyPair is returned when no rate is configured for a pair.
var ErrUnknownCurrencyPair = errors.New("unknown currency pair")

// Pair is a directed conversion From -> To.
type Pair struct {
	From models.Currency
	To   models.Currency
}

// RateTable holds the rate of every configured pair. It is immutable once built.
type RateTable struct {
	rates map[Pair]decimal.Decimal
}

// NewRateTable builds a table from explicit pair rates.
func NewRateTable(rates map[Pair]decimal.Decimal) *RateTable {
	cp := make(map[Pair]decimal.Decimal, len(rates))
	for p, r := range rates {
		cp[p] = r
	}
	return &RateTable{rates: cp}
}

// DefaultReferenceRates returns units of each currency per 1 USD.
func DefaultReferenceRates() map[models.Currency]decimal.Decimal {
	return map[models.Currency]decimal.Decimal{
		models.USD: decimal.NewFromInt(1),
		models.EUR: decimal.RequireFromString("0.92"),
		models.GBP: decimal.RequireFromString("0.79"),
	}
}

// NewRateTableFromReference derives every pair between the supported
// currencies from per-currency reference rates (units per one base unit).
// Each supported currency must have a positive reference rate.
func NewRateTableFromReference(ref map[models.Currency]decimal.Decimal) (*RateTable, error) {
	for _, c := range models.SupportedCurrencies {
		r, ok := ref[c]
		if !ok {
			return nil, fmt.Errorf("missing reference rate for %s", c)
		}
		if !r.IsPositive() {
			return nil, fmt.Errorf("reference rate for %s must be positive, got %s", c, r)
		}
	}

	rates := make(map[Pair]decimal.Decimal)
	for _, from := range models.SupportedCurrencies {
		for _, to := range models.SupportedCurrencies {
			if from == to {
				continue
			}
			rates[Pair{From: from, To: to}] = ref[to].DivRound(ref[from], pairRatePlaces)
		}
	}
	return &RateTable{rates: rates}, nil
}

// Rate returns the configured rate for from -> to. Identity pairs are always 1.
func (t *RateTable) Rate(from, to models.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t.rates[Pair{From: from, To: to}]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", ErrUnknownCurrencyPair, from, to)
	}
	return rate, nil
}

// Convert converts amount from one currency to another and rounds the result.
func (t *RateTable) Convert(from, to models.Currency, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := t.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return Round(amount.Mul(rate)), nil
}

// Round applies the ledger rounding rule.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}
