// Package pricing derives cleaning prices from a rate table and a set of
// adjustment rules.
package pricing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

// Rate table strategy names, selected by the pricing.rate_table setting.
const (
	TableFormula = "formula"
	TableBracket = "bracket"
)

// TableNames lists the selectable rate table strategies.
func TableNames() []string {
	return []string{TableFormula, TableBracket}
}

// RateTable maps a square-footage bucket to its base rates.
type RateTable interface {
	// Name returns the strategy name
	Name() string

	// Lookup returns the row for an exact bucket match
	Lookup(squareFeet int) (types.RateRow, bool)

	// BaseRate returns the row for squareFeet, or the table's fallback row
	// when squareFeet is not a bucket. It never fails.
	BaseRate(squareFeet int) types.RateRow

	// Rows returns a copy of all rows in ascending bucket order
	Rows() []types.RateRow
}

// NewRateTable returns the rate table strategy registered under name.
func NewRateTable(name string) (RateTable, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TableFormula:
		return Formula(), nil
	case TableBracket:
		return Bracket(), nil
	}
	return nil, errors.Config(fmt.Sprintf("unknown rate table %q (allowed: %s)", name, strings.Join(TableNames(), ", ")))
}

// Cadence ratios applied to the unrounded weekly base of a rate row.
var (
	rowBiweeklyRatio  = decimal.RequireFromString("1.15")
	rowMonthlyRatio   = decimal.RequireFromString("1.35")
	rowDeepCleanRatio = decimal.NewFromInt(2)
)

// Formula table shape: row i covers 700+100i square feet and has a weekly
// base of (100 + 3.9i) * 0.6 * 1.2.
const (
	formulaRows      = 84
	formulaFirstSqft = 700
	formulaStepSqft  = 100
)

var (
	formulaStart   = decimal.NewFromInt(100)
	formulaStep    = decimal.RequireFromString("3.9")
	formulaLabor   = decimal.RequireFromString("0.6")
	formulaOverlay = decimal.RequireFromString("1.2")
)

// rowFromBase rounds each column independently from the unrounded base.
func rowFromBase(squareFeet int, base decimal.Decimal) types.RateRow {
	return types.RateRow{
		SquareFeet: squareFeet,
		Weekly:     base.Round(2),
		Biweekly:   base.Mul(rowBiweeklyRatio).Round(2),
		Monthly:    base.Mul(rowMonthlyRatio).Round(2),
		DeepClean:  base.Mul(rowDeepCleanRatio).Round(2),
	}
}

// staticTable is an immutable, exact-match table with a fixed fallback row.
type staticTable struct {
	name     string
	rows     []types.RateRow
	index    map[int]int
	fallback types.RateRow
}

func newStaticTable(name string, rows []types.RateRow, fallback types.RateRow) *staticTable {
	index := make(map[int]int, len(rows))
	for i, row := range rows {
		index[row.SquareFeet] = i
	}
	return &staticTable{name: name, rows: rows, index: index, fallback: fallback}
}

func (t *staticTable) Name() string { return t.name }

func (t *staticTable) Lookup(squareFeet int) (types.RateRow, bool) {
	i, ok := t.index[squareFeet]
	if !ok {
		return types.RateRow{}, false
	}
	return t.rows[i], true
}

func (t *staticTable) BaseRate(squareFeet int) types.RateRow {
	if row, ok := t.Lookup(squareFeet); ok {
		return row
	}
	return t.fallback
}

func (t *staticTable) Rows() []types.RateRow {
	out := make([]types.RateRow, len(t.rows))
	copy(out, t.rows)
	return out
}

var (
	formulaOnce  sync.Once
	formulaTable *staticTable

	bracketOnce  sync.Once
	bracketTable *staticTable
)

// Formula returns the canonical 84-bucket table (700 to 9000 sq ft).
// Unknown sizes fall back to the 700 sq ft row.
func Formula() RateTable {
	formulaOnce.Do(func() {
		rows := make([]types.RateRow, formulaRows)
		for i := range rows {
			step := decimal.NewFromInt(int64(i))
			base := formulaStart.Add(formulaStep.Mul(step)).Mul(formulaLabor).Mul(formulaOverlay)
			rows[i] = rowFromBase(formulaFirstSqft+i*formulaStepSqft, base)
		}
		formulaTable = newStaticTable(TableFormula, rows, rows[0])
	})
	return formulaTable
}

// legacyBrackets are the hand-set weekly rates of the older calculator,
// keyed by the lower bound of each size bracket.
var legacyBrackets = []struct {
	squareFeet int
	weekly     int64
}{
	{300, 105},
	{501, 120},
	{701, 150},
	{901, 165},
	{1101, 180},
	{1301, 195},
	{1501, 210},
}

// Bracket returns the legacy seven-bracket table. Unknown sizes price at 0.
func Bracket() RateTable {
	bracketOnce.Do(func() {
		rows := make([]types.RateRow, len(legacyBrackets))
		for i, b := range legacyBrackets {
			rows[i] = rowFromBase(b.squareFeet, decimal.NewFromInt(b.weekly))
		}
		zero := types.RateRow{
			Weekly:    decimal.Zero,
			Biweekly:  decimal.Zero,
			Monthly:   decimal.Zero,
			DeepClean: decimal.Zero,
		}
		bracketTable = newStaticTable(TableBracket, rows, zero)
	})
	return bracketTable
}

// Buckets returns the square-footage buckets of a table.
func Buckets(t RateTable) []int {
	rows := t.Rows()
	out := make([]int, len(rows))
	for i, row := range rows {
		out[i] = row.SquareFeet
	}
	return out
}
