// Package profile reads property profiles from HCL files.
//
// A profile file looks like:
//
//	property_type = "house"
//	square_feet   = 1500
//	bedrooms      = 3
//	bathrooms     = 2
//	pets          = true
//
//	basement {
//	  size = "large"
//	}
//
//	markup_percent = 10
//
//	floor "Bedroom 1" {
//	  type = "hardwood_or_tile"
//	}
//
// Files ending in .json are read with HCL's JSON syntax.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

// Document is a decoded profile file
type Document struct {
	// Source is the file the profile was read from
	Source string

	// Profile is the validated property profile
	Profile types.PropertyProfile

	// Rooms is the regenerated room list with the file's floor choices
	Rooms []types.Room
}

type fileSchema struct {
	PropertyType *string `hcl:"property_type,optional"`
	SquareFeet   int     `hcl:"square_feet"`

	Bedrooms     int `hcl:"bedrooms,optional"`
	Bathrooms    int `hcl:"bathrooms,optional"`
	Kitchens     int `hcl:"kitchens,optional"`
	DiningRooms  int `hcl:"dining_rooms,optional"`
	LivingRooms  int `hcl:"living_rooms,optional"`
	Offices      int `hcl:"offices,optional"`
	Closets      int `hcl:"closets,optional"`
	LaundryRooms int `hcl:"laundry_rooms,optional"`

	Pets   bool `hcl:"pets,optional"`
	Kids   bool `hcl:"kids,optional"`
	Oven   bool `hcl:"clean_inside_oven,optional"`
	Fridge bool `hcl:"clean_inside_fridge,optional"`

	Basement *basementBlock `hcl:"basement,block"`

	Markup  hcl.Expression `hcl:"markup_percent,optional"`
	General hcl.Expression `hcl:"general_adjustment_percent,optional"`

	Floors []floorBlock `hcl:"floor,block"`
}

type basementBlock struct {
	Size *string `hcl:"size,optional"`
}

type floorBlock struct {
	Room string `hcl:"room,label"`
	Type string `hcl:"type"`
}

// Loader parses profile files. A Loader is not safe for concurrent use.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new profile loader
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadFile reads and decodes a profile file.
func (l *Loader) LoadFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, fmt.Sprintf("failed to read profile %s", path), err)
	}
	return l.Parse(src, path)
}

// Parse decodes a profile from src. filename selects the syntax and is
// used in diagnostics.
func (l *Loader) Parse(src []byte, filename string) (*Document, error) {
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = l.parser.ParseJSON(src, filename)
	} else {
		file, diags = l.parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Parsing(fmt.Sprintf("failed to parse %s", filename), diags)
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Parsing(fmt.Sprintf("failed to decode %s", filename), diags)
	}

	doc, err := raw.document(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

func (f *fileSchema) document(filename string) (*Document, error) {
	p := types.PropertyProfile{
		PropertyType:      types.PropertyHouse,
		SquareFeet:        f.SquareFeet,
		Bedrooms:          f.Bedrooms,
		Bathrooms:         f.Bathrooms,
		Kitchens:          f.Kitchens,
		DiningRooms:       f.DiningRooms,
		LivingRooms:       f.LivingRooms,
		Offices:           f.Offices,
		Closets:           f.Closets,
		LaundryRooms:      f.LaundryRooms,
		HasPets:           f.Pets,
		HasKids:           f.Kids,
		CleanInsideOven:   f.Oven,
		CleanInsideFridge: f.Fridge,
	}

	if f.PropertyType != nil {
		t, err := types.ParsePropertyType(*f.PropertyType)
		if err != nil {
			return nil, err
		}
		p.PropertyType = t
	}

	if f.Basement != nil {
		p.HasBasement = true
		p.BasementSize = types.BasementMedium
		if f.Basement.Size != nil {
			size, err := types.ParseBasementSize(*f.Basement.Size)
			if err != nil {
				return nil, err
			}
			p.BasementSize = size
		}
	}

	p.MarkupPercent = percent(f.Markup)
	p.GeneralAdjustmentPercent = percent(f.General)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	reg := rooms.NewRegistry(p.Counts(), false)
	for _, fl := range f.Floors {
		floor, err := types.ParseFloorType(fl.Type)
		if err != nil {
			return nil, err
		}
		idx, ok := rooms.IndexOf(reg.Rooms(), fl.Room)
		if !ok {
			return nil, errors.Input(fmt.Sprintf("floor block names unknown room %q", fl.Room)).
				WithContext("room", fl.Room)
		}
		if err := reg.SetFloor(idx, floor); err != nil {
			return nil, err
		}
	}

	return &Document{Source: filename, Profile: p, Rooms: reg.Rooms()}, nil
}

// percent evaluates a percentage attribute. Anything that does not evaluate
// or convert to a number (including an absent attribute) counts as 0.
func percent(expr hcl.Expression) decimal.Decimal {
	if expr == nil {
		return decimal.Zero
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.IsKnown() {
		return decimal.Zero
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil || n.IsNull() {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero
	}
	return d
}
