package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cleaning-cost/core/types"
)

// Cadence ratios applied to the adjusted weekly total.
var (
	BiweeklyRatio  = decimal.RequireFromString("1.1")
	MonthlyRatio   = decimal.RequireFromString("1.3")
	DeepCleanRatio = decimal.NewFromInt(2)
)

// Engine turns a property profile and its room list into cadence prices.
// It holds only the immutable rate table, so one Engine may serve
// concurrent callers.
type Engine struct {
	table    RateTable
	logger   *zap.Logger
	currency types.Currency
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCurrency sets the currency stamped on results.
func WithCurrency(c types.Currency) Option {
	return func(e *Engine) {
		if c != "" {
			e.currency = c
		}
	}
}

// NewEngine creates an engine over table. A nil table means Formula().
func NewEngine(table RateTable, opts ...Option) *Engine {
	if table == nil {
		table = Formula()
	}
	e := &Engine{
		table:    table,
		logger:   zap.NewNop(),
		currency: types.CurrencyUSD,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the engine's rate table.
func (e *Engine) Table() RateTable {
	return e.table
}

// Currency returns the currency stamped on results.
func (e *Engine) Currency() types.Currency {
	return e.currency
}

// Quote is an estimate together with how it was derived.
type Quote struct {
	// Table is the rate table strategy used
	Table string `json:"table" yaml:"table"`

	// SquareFeet is the requested size
	SquareFeet int `json:"square_feet" yaml:"square_feet"`

	// BaseRow is the rate row the estimate started from
	BaseRow types.RateRow `json:"base_row" yaml:"base_row"`

	// FallbackBucket is set when SquareFeet is not a bucket of Table
	FallbackBucket bool `json:"fallback_bucket" yaml:"fallback_bucket"`

	// Adjustments are the additive lines in application order
	Adjustments []types.Adjustment `json:"adjustments" yaml:"adjustments"`

	// Subtotal is the weekly base plus all adjustments
	Subtotal decimal.Decimal `json:"subtotal" yaml:"subtotal"`

	// Factor is the markup multiplier applied to Subtotal
	Factor decimal.Decimal `json:"factor" yaml:"factor"`

	// Prices are the rounded cadence prices
	Prices types.CadencePrices `json:"prices" yaml:"prices"`
}

// Estimate prices a profile. It never fails for a validated profile; an
// unknown size silently uses the table's fallback row. Negative totals
// are returned as is.
func (e *Engine) Estimate(profile types.PropertyProfile, rooms []types.Room) types.CadencePrices {
	return e.Quote(profile, rooms).Prices
}

// Quote prices a profile and keeps the breakdown.
func (e *Engine) Quote(profile types.PropertyProfile, rooms []types.Room) *Quote {
	row, ok := e.table.Lookup(profile.SquareFeet)
	if !ok {
		row = e.table.BaseRate(profile.SquareFeet)
		e.logger.Debug("square footage is not a rate bucket, using fallback row",
			zap.String("table", e.table.Name()),
			zap.Int("square_feet", profile.SquareFeet),
			zap.Int("fallback_square_feet", row.SquareFeet))
	}

	q := &Quote{
		Table:          e.table.Name(),
		SquareFeet:     profile.SquareFeet,
		BaseRow:        row,
		FallbackBucket: !ok,
		Adjustments:    []types.Adjustment{},
	}

	weekly := row.Weekly
	for _, rule := range Rules() {
		for _, line := range rule.Apply(profile, rooms) {
			weekly = weekly.Add(line.Amount)
			q.Adjustments = append(q.Adjustments, line)
		}
	}
	q.Subtotal = weekly

	q.Factor = MarkupFactor(profile)
	weekly = weekly.Mul(q.Factor)

	q.Prices = types.CadencePrices{
		Weekly:    weekly.Round(2),
		Biweekly:  weekly.Mul(BiweeklyRatio).Round(2),
		Monthly:   weekly.Mul(MonthlyRatio).Round(2),
		DeepClean: weekly.Mul(DeepCleanRatio).Round(2),
		Currency:  e.currency,
	}
	return q
}
