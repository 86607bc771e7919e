package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cleaning-cost/core/types"
)

// unitCharge is a flat weekly price per unit of a room type.
type unitCharge struct {
	name  string
	label string
	price decimal.Decimal
	count func(p types.PropertyProfile) int
}

var unitCharges = []unitCharge{
	{"bedrooms", "Bedrooms", decimal.NewFromInt(10), func(p types.PropertyProfile) int { return p.Bedrooms }},
	{"bathrooms", "Bathrooms", decimal.NewFromInt(7), func(p types.PropertyProfile) int { return p.Bathrooms }},
	{"kitchens", "Kitchens", decimal.NewFromInt(10), func(p types.PropertyProfile) int { return p.Kitchens }},
	{"dining_rooms", "Dining rooms", decimal.NewFromInt(10), func(p types.PropertyProfile) int { return p.DiningRooms }},
	{"living_rooms", "Living rooms", decimal.NewFromInt(10), func(p types.PropertyProfile) int { return p.LivingRooms }},
	{"laundry_rooms", "Laundry rooms", decimal.NewFromInt(10), func(p types.PropertyProfile) int { return p.LaundryRooms }},
	{"offices", "Offices", decimal.NewFromInt(15), func(p types.PropertyProfile) int { return p.Offices }},
	{"closets", "Closets", decimal.NewFromInt(15), func(p types.PropertyProfile) int { return p.Closets }},
}

// addOn is a flat weekly charge switched on by a profile flag.
type addOn struct {
	name   string
	label  string
	amount decimal.Decimal
	on     func(p types.PropertyProfile) bool
}

var addOns = []addOn{
	{"pets", "Pets", decimal.NewFromInt(5), func(p types.PropertyProfile) bool { return p.HasPets }},
	{"kids", "Kids", decimal.NewFromInt(5), func(p types.PropertyProfile) bool { return p.HasKids }},
	{"inside_oven", "Inside oven", decimal.NewFromInt(30), func(p types.PropertyProfile) bool { return p.CleanInsideOven }},
	{"inside_fridge", "Inside fridge", decimal.NewFromInt(30), func(p types.PropertyProfile) bool { return p.CleanInsideFridge }},
}

// Basement discount tiers by square footage (inclusive upper bounds).
var basementTiers = []struct {
	upTo     int // 0 = unlimited
	discount decimal.Decimal
}{
	{2500, decimal.NewFromInt(-20)},
	{5000, decimal.NewFromInt(-30)},
	{0, decimal.NewFromInt(-40)},
}

// FloorSurchargePerRoom is added for every room that is not carpeted.
var FloorSurchargePerRoom = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// Rule is a named additive adjustment. Apply returns zero or more lines.
type Rule struct {
	Name  string
	Apply func(p types.PropertyProfile, rooms []types.Room) []types.Adjustment
}

// Rules returns the additive rules in application order.
func Rules() []Rule {
	return []Rule{
		{Name: "rooms", Apply: func(p types.PropertyProfile, _ []types.Room) []types.Adjustment { return roomChargeLines(p) }},
		{Name: "add_ons", Apply: func(p types.PropertyProfile, _ []types.Room) []types.Adjustment { return addOnLines(p) }},
		{Name: "basement", Apply: func(p types.PropertyProfile, _ []types.Room) []types.Adjustment { return basementLines(p) }},
		{Name: "floors", Apply: func(_ types.PropertyProfile, rooms []types.Room) []types.Adjustment { return floorLines(rooms) }},
	}
}

// RoomCharge is the per-unit charge for every counted room type.
func RoomCharge(p types.PropertyProfile) decimal.Decimal {
	return sum(roomChargeLines(p))
}

// AddOnCharge is the sum of the flag-driven flat charges.
func AddOnCharge(p types.PropertyProfile) decimal.Decimal {
	return sum(addOnLines(p))
}

// BasementAdjustment is the discount for a house or townhouse priced
// without its basement. Apartments and included basements get nothing.
func BasementAdjustment(p types.PropertyProfile) decimal.Decimal {
	return sum(basementLines(p))
}

// FloorSurcharge is FloorSurchargePerRoom for every non-carpet room.
func FloorSurcharge(rooms []types.Room) decimal.Decimal {
	return sum(floorLines(rooms))
}

// MarkupFactor is 1 + (markup + general adjustment) / 100. The two
// percentages are added, not compounded.
func MarkupFactor(p types.PropertyProfile) decimal.Decimal {
	pct := p.MarkupPercent.Add(p.GeneralAdjustmentPercent)
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}

// AdjustmentChoices are the general adjustment percentages offered to
// users: -100% to +100% in steps of 10.
func AdjustmentChoices() []int {
	out := make([]int, 0, 21)
	for v := -100; v <= 100; v += 10 {
		out = append(out, v)
	}
	return out
}

func roomChargeLines(p types.PropertyProfile) []types.Adjustment {
	var lines []types.Adjustment
	for _, c := range unitCharges {
		n := c.count(p)
		if n == 0 {
			continue
		}
		lines = append(lines, types.Adjustment{
			Name:    c.name,
			Label:   c.label,
			Amount:  c.price.Mul(decimal.NewFromInt(int64(n))),
			Formula: fmt.Sprintf("%d x $%s", n, c.price.StringFixed(2)),
		})
	}
	return lines
}

func addOnLines(p types.PropertyProfile) []types.Adjustment {
	var lines []types.Adjustment
	for _, a := range addOns {
		if !a.on(p) {
			continue
		}
		lines = append(lines, types.Adjustment{
			Name:    a.name,
			Label:   a.label,
			Amount:  a.amount,
			Formula: "flat",
		})
	}
	return lines
}

func basementLines(p types.PropertyProfile) []types.Adjustment {
	if p.PropertyType == types.PropertyApartment || p.HasBasement {
		return nil
	}
	for _, tier := range basementTiers {
		if tier.upTo == 0 || p.SquareFeet <= tier.upTo {
			formula := "over 5000 sq ft"
			if tier.upTo != 0 {
				formula = fmt.Sprintf("up to %d sq ft", tier.upTo)
			}
			return []types.Adjustment{{
				Name:    "no_basement",
				Label:   "No basement",
				Amount:  tier.discount,
				Formula: formula,
			}}
		}
	}
	return nil
}

func floorLines(rooms []types.Room) []types.Adjustment {
	var lines []types.Adjustment
	for _, r := range rooms {
		if r.FloorType == types.FloorCarpet {
			continue
		}
		lines = append(lines, types.Adjustment{
			Name:    "floor",
			Label:   r.Label + " floor",
			Amount:  FloorSurchargePerRoom,
			Formula: string(r.FloorType),
		})
	}
	return lines
}

func sum(lines []types.Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
