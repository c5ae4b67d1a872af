package models

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code of a supported account currency.
type Currency string

// Supported currency codes
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// SupportedCurrencies lists every currency an account may be opened in.
var SupportedCurrencies = []Currency{USD, EUR, GBP}

// ParseCurrency normalizes s and checks it against SupportedCurrencies.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	for _, supported := range SupportedCurrencies {
		if c == supported {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported currency %q", s)
}

// Symbol returns the sign used when displaying balances.
func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	default:
		return "£"
	}
}
