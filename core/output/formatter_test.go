package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cleaning-cost/core/pricing"
	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
)

func sampleResult(t *testing.T, breakdown bool) *EstimationResult {
	t.Helper()
	profile := types.DefaultProfile()
	profile.HasBasement = false
	list, err := rooms.SetFloor(rooms.Regenerate(profile.Counts()), 1, types.FloorHardwoodOrTile)
	require.NoError(t, err)

	return &EstimationResult{
		Profile:       profile,
		Rooms:         list,
		Quote:         pricing.NewEngine(pricing.Formula()).Quote(profile, list),
		Metadata:      EstimationMetadata{Version: "test", Source: "unit"},
		ShowBreakdown: breakdown,
	}
}

func TestRegisteredFormats(t *testing.T) {
	assert.Equal(t, []string{"cli", "json", "markdown", "yaml"}, Formats())

	_, ok := Get(FormatCLI)
	assert.True(t, ok)
	_, ok = Get(Format("html"))
	assert.False(t, ok)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$119.00", Money(decimal.NewFromInt(119), types.CurrencyUSD))
	assert.Equal(t, "$130.90", Money(decimal.RequireFromString("130.9"), types.CurrencyUSD))
	assert.Equal(t, "-$20.00", Money(decimal.NewFromInt(-20), types.CurrencyUSD))
	assert.Equal(t, "€5.50", Money(decimal.RequireFromString("5.5"), types.CurrencyEUR))
	assert.Equal(t, "+$5.00", Signed(decimal.NewFromInt(5), types.CurrencyUSD))
	assert.Equal(t, "-$20.00", Signed(decimal.NewFromInt(-20), types.CurrencyUSD))
}

func TestCLIRender(t *testing.T) {
	f, _ := Get(FormatCLI)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, sampleResult(t, false)))

	out := buf.String()
	// 72 + 47 - 20 + 5
	assert.Contains(t, out, "Weekly")
	assert.Contains(t, out, "$104.00")
	assert.Contains(t, out, "Deep Clean")
	assert.NotContains(t, out, "Subtotal")
}

func TestCLIRenderBreakdown(t *testing.T) {
	f, _ := Get(FormatCLI)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, sampleResult(t, true)))

	out := buf.String()
	assert.Contains(t, out, "Base rate (700 sq ft)")
	assert.Contains(t, out, "No basement")
	assert.Contains(t, out, "-$20.00")
	assert.Contains(t, out, "Dining Room 1 floor")
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "hardwood_or_tile")
}

func TestMarkdownRender(t *testing.T) {
	f, _ := Get(FormatMarkdown)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, sampleResult(t, false)))

	assert.Contains(t, buf.String(), "| Weekly |")
}

func TestJSONRender(t *testing.T) {
	f, _ := Get(FormatJSON)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, sampleResult(t, true)))

	var decoded struct {
		Quote struct {
			Prices types.CadencePrices `json:"prices"`
		} `json:"quote"`
		Rooms []types.Room `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Quote.Prices.Weekly.Equal(decimal.NewFromInt(104)))
	assert.Len(t, decoded.Rooms, 3)
}

func TestYAMLRender(t *testing.T) {
	f, _ := Get(FormatYAML)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, sampleResult(t, false)))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "quote")
	assert.Contains(t, buf.String(), "weekly: \"104\"")
}

func TestRenderRates(t *testing.T) {
	sheet := &RateSheet{Table: "bracket", Currency: types.CurrencyUSD, Rows: pricing.Bracket().Rows()}

	f, _ := Get(FormatCLI)
	var buf bytes.Buffer
	require.NoError(t, f.RenderRates(&buf, sheet))
	assert.Contains(t, buf.String(), "1501")
	assert.Contains(t, buf.String(), "$210.00")

	f, _ = Get(FormatJSON)
	buf.Reset()
	require.NoError(t, f.RenderRates(&buf, sheet))
	var decoded RateSheet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Rows, 7)
}

func TestRenderRooms(t *testing.T) {
	list := []types.Room{
		types.NewRoom(types.CategoryBedroom, 1),
		types.NewRoom(types.CategoryCloset, 1),
	}
	list[1].FloorType = types.FloorHardwoodOrTile

	f, _ := Get(FormatMarkdown)
	var buf bytes.Buffer
	require.NoError(t, f.RenderRooms(&buf, list))
	assert.Contains(t, buf.String(), "| Bedroom 1 |")
	assert.Contains(t, buf.String(), "hardwood_or_tile")

	f, _ = Get(FormatJSON)
	buf.Reset()
	require.NoError(t, f.RenderRooms(&buf, list))
	var decoded []types.Room
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, list, decoded)
}
