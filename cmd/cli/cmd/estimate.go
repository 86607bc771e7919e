// Package cmd - estimate command
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cleaning-cost/adapters/profile"
	"cleaning-cost/core/determinism"
	"cleaning-cost/core/output"
	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
	"cleaning-cost/internal/logging"
)

// profileFlags are the per-field profile flags. Only flags that were set
// on the command line override the base profile.
type profileFlags struct {
	propertyType string
	squareFeet   int

	bedrooms, bathrooms, kitchens, diningRooms  int
	livingRooms, offices, closets, laundryRooms int

	pets, kids, basement bool
	basementSize         string
	oven, fridge         bool

	markup, general string
	floors          []string
}

func (f *profileFlags) register(fs *pflag.FlagSet) {
	d := types.DefaultProfile()
	fs.StringVar(&f.propertyType, "property-type", string(d.PropertyType), "property type (house, townhouse, apartment)")
	fs.IntVar(&f.squareFeet, "sqft", d.SquareFeet, "square footage bucket")
	fs.IntVar(&f.bedrooms, "bedrooms", d.Bedrooms, "number of bedrooms")
	fs.IntVar(&f.bathrooms, "bathrooms", d.Bathrooms, "number of bathrooms")
	fs.IntVar(&f.kitchens, "kitchens", d.Kitchens, "number of kitchens")
	fs.IntVar(&f.diningRooms, "dining-rooms", d.DiningRooms, "number of dining rooms")
	fs.IntVar(&f.livingRooms, "living-rooms", d.LivingRooms, "number of living rooms")
	fs.IntVar(&f.offices, "offices", d.Offices, "number of offices")
	fs.IntVar(&f.closets, "closets", d.Closets, "number of closets")
	fs.IntVar(&f.laundryRooms, "laundry-rooms", d.LaundryRooms, "number of laundry rooms")
	fs.BoolVar(&f.pets, "pets", d.HasPets, "household has pets")
	fs.BoolVar(&f.kids, "kids", d.HasKids, "household has kids")
	fs.BoolVar(&f.basement, "basement", d.HasBasement, "property has a basement")
	fs.StringVar(&f.basementSize, "basement-size", string(d.BasementSize), "basement size (small, medium, large)")
	fs.BoolVar(&f.oven, "oven", d.CleanInsideOven, "clean inside the oven")
	fs.BoolVar(&f.fridge, "fridge", d.CleanInsideFridge, "clean inside the fridge")
	fs.StringVar(&f.markup, "markup", "0", "markup percent")
	fs.StringVar(&f.general, "general-adjustment", "0", "general adjustment percent")
	fs.StringArrayVar(&f.floors, "floor", nil, `room floor as "<room label>=<floor type>", repeatable`)
}

// apply overrides p with every changed flag.
func (f *profileFlags) apply(fs *pflag.FlagSet, p *types.PropertyProfile) error {
	if fs.Changed("property-type") {
		t, err := types.ParsePropertyType(f.propertyType)
		if err != nil {
			return err
		}
		p.PropertyType = t
	}
	if fs.Changed("basement-size") {
		s, err := types.ParseBasementSize(f.basementSize)
		if err != nil {
			return err
		}
		p.BasementSize = s
	}

	ints := map[string]struct {
		dst *int
		src int
	}{
		"sqft":          {&p.SquareFeet, f.squareFeet},
		"bedrooms":      {&p.Bedrooms, f.bedrooms},
		"bathrooms":     {&p.Bathrooms, f.bathrooms},
		"kitchens":      {&p.Kitchens, f.kitchens},
		"dining-rooms":  {&p.DiningRooms, f.diningRooms},
		"living-rooms":  {&p.LivingRooms, f.livingRooms},
		"offices":       {&p.Offices, f.offices},
		"closets":       {&p.Closets, f.closets},
		"laundry-rooms": {&p.LaundryRooms, f.laundryRooms},
	}
	for name, v := range ints {
		if fs.Changed(name) {
			*v.dst = v.src
		}
	}

	bools := map[string]struct {
		dst *bool
		src bool
	}{
		"pets":     {&p.HasPets, f.pets},
		"kids":     {&p.HasKids, f.kids},
		"basement": {&p.HasBasement, f.basement},
		"oven":     {&p.CleanInsideOven, f.oven},
		"fridge":   {&p.CleanInsideFridge, f.fridge},
	}
	for name, v := range bools {
		if fs.Changed(name) {
			*v.dst = v.src
		}
	}

	if fs.Changed("markup") {
		p.MarkupPercent = parsePercent(f.markup)
	}
	if fs.Changed("general-adjustment") {
		p.GeneralAdjustmentPercent = parsePercent(f.general)
	}
	return nil
}

// parsePercent reads a percentage. Input that is not a number counts as 0.
func parsePercent(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// applyFloors sets floor types from "<label>=<floor>" assignments.
func applyFloors(list []types.Room, assignments []string) ([]types.Room, error) {
	for _, a := range assignments {
		label, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, errors.Input(fmt.Sprintf("invalid --floor %q, want <room label>=<floor type>", a))
		}
		floor, err := types.ParseFloorType(value)
		if err != nil {
			return nil, err
		}
		idx, found := rooms.IndexOf(list, strings.TrimSpace(label))
		if !found {
			return nil, errors.Input(fmt.Sprintf("no room labelled %q", label))
		}
		if list, err = rooms.SetFloor(list, idx, floor); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func newEstimateCmd() *cobra.Command {
	var (
		profilePath string
		flags       profileFlags
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate cleaning prices for a property",
		Long: `Estimate weekly, bi-weekly, monthly and deep clean prices.

The property is described by flags, by a profile file (HCL or JSON), or
by a profile file with flags overriding individual fields. Unset flags
keep the defaults of an empty estimate form: a 700 sq ft house with one
bedroom, bathroom, kitchen, dining room and living room and a medium
basement.

Examples:
  cleaning-cost estimate
  cleaning-cost estimate --sqft 1500 --bedrooms 3 --pets --markup 10
  cleaning-cost estimate --profile house.hcl --floor "Bedroom 2=tile"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			rt := runtimeFrom(cmd)

			p := types.DefaultProfile()
			var list []types.Room
			source := "flags"
			if profilePath != "" {
				doc, err := profile.NewLoader().LoadFile(profilePath)
				if err != nil {
					return err
				}
				p, list, source = doc.Profile, doc.Rooms, doc.Source
			}

			loaded := p.Counts()
			if err := flags.apply(cmd.Flags(), &p); err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return err
			}

			switch {
			case list == nil:
				list = rooms.Regenerate(p.Counts())
			case p.Counts() != loaded && rt.cfg.Rooms.PreserveFloors:
				list = rooms.Reconcile(list, p.Counts())
			case p.Counts() != loaded:
				list = rooms.Regenerate(p.Counts())
			}

			list, err := applyFloors(list, flags.floors)
			if err != nil {
				return err
			}

			quote := rt.engine.Quote(p, list)
			if quote.FallbackBucket {
				logging.Warn("square footage is not a rate table bucket, using fallback row",
					zap.Int("square_feet", p.SquareFeet),
					zap.Int("fallback", quote.BaseRow.SquareFeet),
					zap.String("table", quote.Table))
			}

			hash, err := determinism.HashJSON(struct {
				Profile types.PropertyProfile `json:"profile"`
				Rooms   []types.Room          `json:"rooms"`
				Table   string                `json:"table"`
			}{p, list, quote.Table})
			if err != nil {
				return err
			}

			result := &output.EstimationResult{
				Profile: p,
				Rooms:   list,
				Quote:   quote,
				Metadata: output.EstimationMetadata{
					Timestamp: time.Now().UTC().Format(time.RFC3339),
					Duration:  time.Since(start).String(),
					Version:   Version,
					Source:    source,
					InputHash: hash.Hex(),
				},
				ShowBreakdown: rt.cfg.Output.ShowBreakdown,
			}
			return rt.formatter.Render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "profile file (.hcl or .json)")
	flags.register(cmd.Flags())
	return cmd
}
