package pricing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
)

// referenceProfile is 700 sq ft with one bedroom, bathroom, kitchen,
// dining room and living room, basement included, nothing else.
func referenceProfile() types.PropertyProfile {
	return types.PropertyProfile{
		PropertyType: types.PropertyHouse,
		SquareFeet:   700,
		Bedrooms:     1,
		Bathrooms:    1,
		Kitchens:     1,
		DiningRooms:  1,
		LivingRooms:  1,
		HasBasement:  true,
		BasementSize: types.BasementMedium,
	}
}

func TestEstimateReferenceExample(t *testing.T) {
	p := referenceProfile()
	got := NewEngine(Formula()).Estimate(p, rooms.Regenerate(p.Counts()))

	assertDecimal(t, "119.00", got.Weekly)
	assertDecimal(t, "130.90", got.Biweekly)
	assertDecimal(t, "154.70", got.Monthly)
	assertDecimal(t, "238.00", got.DeepClean)
	assert.Equal(t, types.CurrencyUSD, got.Currency)
}

func TestEstimateIsDeterministic(t *testing.T) {
	p := referenceProfile()
	p.HasPets = true
	p.MarkupPercent = d("7.5")
	list := rooms.Regenerate(p.Counts())
	engine := NewEngine(nil)

	first := engine.Estimate(p, list)
	second := engine.Estimate(p, list)
	assert.True(t, first.Equal(second))
}

func TestEstimateConcurrentCallsAgree(t *testing.T) {
	p := referenceProfile()
	list := rooms.Regenerate(p.Counts())
	engine := NewEngine(Formula())
	want := engine.Estimate(p, list)

	var wg sync.WaitGroup
	results := make([]types.CadencePrices, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Estimate(p, list)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.True(t, want.Equal(got))
	}
}

func TestEstimateBasementTiers(t *testing.T) {
	engine := NewEngine(Formula())

	tests := []struct {
		sqft  int
		delta string
	}{
		{2500, "-20"},
		{2501, "-30"},
		{5000, "-30"},
		{5001, "-40"},
	}
	for _, tt := range tests {
		withBasement := referenceProfile()
		withBasement.SquareFeet = tt.sqft
		without := withBasement
		without.HasBasement = false

		a := engine.Quote(withBasement, nil)
		b := engine.Quote(without, nil)
		assertDecimal(t, tt.delta, b.Subtotal.Sub(a.Subtotal), tt.sqft)
	}
}

func TestEstimateApartmentIgnoresBasementFlag(t *testing.T) {
	engine := NewEngine(Formula())
	p := referenceProfile()
	p.PropertyType = types.PropertyApartment

	p.HasBasement = true
	withFlag := engine.Estimate(p, nil)
	p.HasBasement = false
	withoutFlag := engine.Estimate(p, nil)

	assert.True(t, withFlag.Equal(withoutFlag))
	assertDecimal(t, "119.00", withoutFlag.Weekly)
}

func TestEstimateFloorSurcharge(t *testing.T) {
	engine := NewEngine(Formula())
	p := referenceProfile()
	p.Bedrooms = 3
	carpet := rooms.Regenerate(p.Counts())

	tiled := carpet
	for i := 0; i < 3; i++ {
		var err error
		tiled, err = rooms.SetFloor(tiled, i, types.FloorHardwoodOrTile)
		require.NoError(t, err)
	}

	a := engine.Estimate(p, carpet)
	b := engine.Estimate(p, tiled)
	assertDecimal(t, "15", b.Weekly.Sub(a.Weekly))
}

func TestEstimateMarkupComposesAdditively(t *testing.T) {
	engine := NewEngine(Formula())

	split := referenceProfile()
	split.MarkupPercent = d("10")
	split.GeneralAdjustmentPercent = d("-5")

	single := referenceProfile()
	single.MarkupPercent = d("5")

	assert.True(t, engine.Estimate(split, nil).Equal(engine.Estimate(single, nil)))
}

func TestEstimateMarkupAppliedLast(t *testing.T) {
	p := referenceProfile()
	p.MarkupPercent = d("10")
	got := NewEngine(Formula()).Estimate(p, rooms.Regenerate(p.Counts()))

	assertDecimal(t, "130.90", got.Weekly)
	assertDecimal(t, "143.99", got.Biweekly)
	assertDecimal(t, "170.17", got.Monthly)
	assertDecimal(t, "261.80", got.DeepClean)
}

func TestEstimateUnknownBucketFallsBack(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := NewEngine(Formula(), WithLogger(zap.New(core)))

	p := referenceProfile()
	p.SquareFeet = 650
	q := engine.Quote(p, nil)

	assert.True(t, q.FallbackBucket)
	assert.Equal(t, 700, q.BaseRow.SquareFeet)
	assertDecimal(t, "119.00", q.Prices.Weekly)
	assert.Equal(t, 1, logs.FilterField(zap.Int("square_feet", 650)).Len())
}

func TestEstimateNegativeTotalsAreNotClamped(t *testing.T) {
	p := types.PropertyProfile{PropertyType: types.PropertyHouse, SquareFeet: 2501}
	got := NewEngine(Bracket()).Estimate(p, nil)

	assertDecimal(t, "-30", got.Weekly)
	assertDecimal(t, "-33", got.Biweekly)
	assertDecimal(t, "-39", got.Monthly)
	assertDecimal(t, "-60", got.DeepClean)
}

func TestEstimateBracketTable(t *testing.T) {
	p := referenceProfile()
	p.SquareFeet = 1101
	got := NewEngine(Bracket()).Estimate(p, nil)

	// 180 + 47
	assertDecimal(t, "227", got.Weekly)
	assertDecimal(t, "249.70", got.Biweekly)
}

func TestQuoteBreakdown(t *testing.T) {
	p := referenceProfile()
	p.HasPets = true
	p.HasBasement = false
	list, err := rooms.SetFloor(rooms.Regenerate(p.Counts()), 0, types.FloorHardwoodOrTile)
	require.NoError(t, err)

	q := NewEngine(Formula()).Quote(p, list)

	var names []string
	for _, a := range q.Adjustments {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"bedrooms", "bathrooms", "kitchens", "dining_rooms", "living_rooms",
		"pets", "no_basement", "floor",
	}, names)

	// 72 + 47 + 5 - 20 + 5
	assertDecimal(t, "109", q.Subtotal)
	assertDecimal(t, "1", q.Factor)
	assert.Equal(t, TableFormula, q.Table)
	assert.False(t, q.FallbackBucket)
}

func TestWithCurrency(t *testing.T) {
	got := NewEngine(Formula(), WithCurrency(types.CurrencyEUR)).Estimate(referenceProfile(), nil)
	assert.Equal(t, types.CurrencyEUR, got.Currency)
}
