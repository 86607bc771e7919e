// Package types - Property profile and its enumerations
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cleaning-cost/internal/errors"
)

// MaxRoomCount is the largest count offered by room count pickers.
// Counts above it are still priced.
const MaxRoomCount = 30

// CountLimit is the largest room count Validate accepts for any room type.
const CountLimit = 1000

// PropertyType is the kind of dwelling
type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyTownhouse PropertyType = "townhouse"
	PropertyApartment PropertyType = "apartment"
)

// PropertyTypes lists the valid property types.
func PropertyTypes() []PropertyType {
	return []PropertyType{PropertyHouse, PropertyTownhouse, PropertyApartment}
}

// ParsePropertyType parses a property type, case-insensitively.
func ParsePropertyType(s string) (PropertyType, error) {
	v := PropertyType(strings.ToLower(strings.TrimSpace(s)))
	if v.IsValid() {
		return v, nil
	}
	return "", errors.InvalidEnum("property type", s, enumStrings(PropertyTypes()))
}

// IsValid reports whether t is a known property type.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyHouse, PropertyTownhouse, PropertyApartment:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PropertyType) UnmarshalText(text []byte) error {
	v, err := ParsePropertyType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BasementSize is only meaningful when a basement is included
type BasementSize string

const (
	BasementSmall  BasementSize = "small"
	BasementMedium BasementSize = "medium"
	BasementLarge  BasementSize = "large"
)

// BasementSizes lists the valid basement sizes.
func BasementSizes() []BasementSize {
	return []BasementSize{BasementSmall, BasementMedium, BasementLarge}
}

// ParseBasementSize parses a basement size, case-insensitively.
func ParseBasementSize(s string) (BasementSize, error) {
	v := BasementSize(strings.ToLower(strings.TrimSpace(s)))
	if v.IsValid() {
		return v, nil
	}
	return "", errors.InvalidEnum("basement size", s, enumStrings(BasementSizes()))
}

// IsValid reports whether s is a known basement size.
func (s BasementSize) IsValid() bool {
	switch s {
	case BasementSmall, BasementMedium, BasementLarge:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value leaves
// the size unset.
func (s *BasementSize) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	v, err := ParseBasementSize(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PropertyProfile is the immutable description of a property to price.
type PropertyProfile struct {
	PropertyType PropertyType `json:"property_type" yaml:"property_type"`

	// SquareFeet should be one of the rate table's buckets
	SquareFeet int `json:"square_feet" yaml:"square_feet"`

	Bedrooms     int `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms    int `json:"bathrooms" yaml:"bathrooms"`
	Kitchens     int `json:"kitchens" yaml:"kitchens"`
	DiningRooms  int `json:"dining_rooms" yaml:"dining_rooms"`
	LivingRooms  int `json:"living_rooms" yaml:"living_rooms"`
	Offices      int `json:"offices" yaml:"offices"`
	Closets      int `json:"closets" yaml:"closets"`
	LaundryRooms int `json:"laundry_rooms" yaml:"laundry_rooms"`

	HasPets      bool         `json:"has_pets" yaml:"has_pets"`
	HasKids      bool         `json:"has_kids" yaml:"has_kids"`
	HasBasement  bool         `json:"has_basement" yaml:"has_basement"`
	BasementSize BasementSize `json:"basement_size,omitempty" yaml:"basement_size,omitempty"`

	CleanInsideOven   bool `json:"clean_inside_oven" yaml:"clean_inside_oven"`
	CleanInsideFridge bool `json:"clean_inside_fridge" yaml:"clean_inside_fridge"`

	MarkupPercent            decimal.Decimal `json:"markup_percent" yaml:"markup_percent"`
	GeneralAdjustmentPercent decimal.Decimal `json:"general_adjustment_percent" yaml:"general_adjustment_percent"`
}

// DefaultProfile returns the values an empty estimate form starts with.
func DefaultProfile() PropertyProfile {
	return PropertyProfile{
		PropertyType: PropertyHouse,
		SquareFeet:   700,
		Bedrooms:     1,
		Bathrooms:    1,
		Kitchens:     1,
		DiningRooms:  1,
		LivingRooms:  1,
		HasBasement:  true,
		BasementSize: BasementMedium,
	}
}

// Validate rejects invalid enumerations and negative counts. The engine
// assumes a validated profile.
func (p PropertyProfile) Validate() error {
	if !p.PropertyType.IsValid() {
		return errors.InvalidEnum("property type", string(p.PropertyType), enumStrings(PropertyTypes()))
	}
	if p.BasementSize != "" && !p.BasementSize.IsValid() {
		return errors.InvalidEnum("basement size", string(p.BasementSize), enumStrings(BasementSizes()))
	}

	counts := []struct {
		name  string
		value int
	}{
		{"bedrooms", p.Bedrooms},
		{"bathrooms", p.Bathrooms},
		{"kitchens", p.Kitchens},
		{"dining_rooms", p.DiningRooms},
		{"living_rooms", p.LivingRooms},
		{"offices", p.Offices},
		{"closets", p.Closets},
		{"laundry_rooms", p.LaundryRooms},
	}
	for _, c := range counts {
		if err := validateCount(c.name, c.value); err != nil {
			return err
		}
	}
	return nil
}

func validateCount(name string, value int) error {
	if value < 0 {
		return errors.Input(fmt.Sprintf("%s must not be negative, got %d", name, value)).
			WithContext("field", name)
	}
	if value > CountLimit {
		return errors.Input(fmt.Sprintf("%s must not exceed %d, got %d", name, CountLimit, value)).
			WithContext("field", name)
	}
	return nil
}

// Counts returns the room counts that drive the floor registry.
func (p PropertyProfile) Counts() RoomCounts {
	return RoomCounts{
		Bedrooms:    p.Bedrooms,
		DiningRooms: p.DiningRooms,
		LivingRooms: p.LivingRooms,
		Offices:     p.Offices,
		Closets:     p.Closets,
	}
}

// EffectiveBasement reports whether the basement flag applies. Apartments
// never have one.
func (p PropertyProfile) EffectiveBasement() bool {
	return p.PropertyType != PropertyApartment && p.HasBasement
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
