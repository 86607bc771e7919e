// Package types - Price and rate types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Cadence is a billing frequency
type Cadence string

const (
	CadenceWeekly    Cadence = "weekly"
	CadenceBiweekly  Cadence = "biweekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceDeepClean Cadence = "deep_clean"
)

// Cadences lists every cadence in display order.
func Cadences() []Cadence {
	return []Cadence{CadenceWeekly, CadenceBiweekly, CadenceMonthly, CadenceDeepClean}
}

// RateRow is one size bucket of a rate table
type RateRow struct {
	// SquareFeet is the bucket key
	SquareFeet int `json:"square_feet" yaml:"square_feet"`

	Weekly    decimal.Decimal `json:"weekly" yaml:"weekly"`
	Biweekly  decimal.Decimal `json:"biweekly" yaml:"biweekly"`
	Monthly   decimal.Decimal `json:"monthly" yaml:"monthly"`
	DeepClean decimal.Decimal `json:"deep_clean" yaml:"deep_clean"`
}

// CadencePrices is the output of an estimate. Every field is rounded to
// two fractional digits independently.
type CadencePrices struct {
	Weekly    decimal.Decimal `json:"weekly" yaml:"weekly"`
	Biweekly  decimal.Decimal `json:"biweekly" yaml:"biweekly"`
	Monthly   decimal.Decimal `json:"monthly" yaml:"monthly"`
	DeepClean decimal.Decimal `json:"deep_clean" yaml:"deep_clean"`

	// Currency is the price currency
	Currency Currency `json:"currency" yaml:"currency"`
}

// Get returns the price for a cadence.
func (p CadencePrices) Get(c Cadence) decimal.Decimal {
	switch c {
	case CadenceWeekly:
		return p.Weekly
	case CadenceBiweekly:
		return p.Biweekly
	case CadenceMonthly:
		return p.Monthly
	case CadenceDeepClean:
		return p.DeepClean
	}
	return decimal.Zero
}

// Equal reports whether both price sets are numerically identical.
func (p CadencePrices) Equal(other CadencePrices) bool {
	return p.Currency == other.Currency &&
		p.Weekly.Equal(other.Weekly) &&
		p.Biweekly.Equal(other.Biweekly) &&
		p.Monthly.Equal(other.Monthly) &&
		p.DeepClean.Equal(other.DeepClean)
}

// Adjustment is one additive line applied to the weekly base
type Adjustment struct {
	// Name identifies the rule that produced the line
	Name string `json:"name" yaml:"name"`

	// Label is a human-readable label
	Label string `json:"label" yaml:"label"`

	// Amount is the signed weekly delta
	Amount decimal.Decimal `json:"amount" yaml:"amount"`

	// Formula describes how the amount was calculated
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
}
