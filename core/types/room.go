// Package types - Rooms and floor types
package types

import (
	"fmt"
	"strings"

	"cleaning-cost/internal/errors"
)

// FloorType is the floor finish of a room
type FloorType string

const (
	FloorCarpet         FloorType = "carpet"
	FloorHardwoodOrTile FloorType = "hardwood_or_tile"
)

// FloorTypes lists the valid floor types.
func FloorTypes() []FloorType {
	return []FloorType{FloorCarpet, FloorHardwoodOrTile}
}

// ParseFloorType parses a floor type. The spellings used by the estimate
// form ("tile", "hardwood", "Hardwood/Tile") are accepted as aliases.
func ParseFloorType(s string) (FloorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "carpet":
		return FloorCarpet, nil
	case "hardwood_or_tile", "hardwood/tile", "hardwood", "tile":
		return FloorHardwoodOrTile, nil
	}
	return "", errors.InvalidEnum("floor type", s, enumStrings(FloorTypes()))
}

// IsValid reports whether f is a known floor type.
func (f FloorType) IsValid() bool {
	return f == FloorCarpet || f == FloorHardwoodOrTile
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FloorType) UnmarshalText(text []byte) error {
	v, err := ParseFloorType(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// RoomCategory is a room kind that gets per-room floor tracking
type RoomCategory string

const (
	CategoryBedroom    RoomCategory = "bedroom"
	CategoryDiningRoom RoomCategory = "dining_room"
	CategoryLivingRoom RoomCategory = "living_room"
	CategoryOffice     RoomCategory = "office"
	CategoryCloset     RoomCategory = "closet"
)

// RoomCategories lists the tracked categories in room list order.
func RoomCategories() []RoomCategory {
	return []RoomCategory{CategoryBedroom, CategoryDiningRoom, CategoryLivingRoom, CategoryOffice, CategoryCloset}
}

// DisplayName returns the label prefix for rooms of this category.
func (c RoomCategory) DisplayName() string {
	switch c {
	case CategoryBedroom:
		return "Bedroom"
	case CategoryDiningRoom:
		return "Dining Room"
	case CategoryLivingRoom:
		return "Living Room"
	case CategoryOffice:
		return "Office"
	case CategoryCloset:
		return "Closet"
	}
	return string(c)
}

// RoomCounts are the counts that drive room list generation. Bathrooms,
// kitchens and laundry rooms are not tracked per room.
type RoomCounts struct {
	Bedrooms    int `json:"bedrooms" yaml:"bedrooms"`
	DiningRooms int `json:"dining_rooms" yaml:"dining_rooms"`
	LivingRooms int `json:"living_rooms" yaml:"living_rooms"`
	Offices     int `json:"offices" yaml:"offices"`
	Closets     int `json:"closets" yaml:"closets"`
}

// Validate rejects negative counts and counts above CountLimit.
func (c RoomCounts) Validate() error {
	for _, cat := range RoomCategories() {
		if err := validateCount(string(cat), c.For(cat)); err != nil {
			return err
		}
	}
	return nil
}

// For returns the count of a category.
func (c RoomCounts) For(cat RoomCategory) int {
	switch cat {
	case CategoryBedroom:
		return c.Bedrooms
	case CategoryDiningRoom:
		return c.DiningRooms
	case CategoryLivingRoom:
		return c.LivingRooms
	case CategoryOffice:
		return c.Offices
	case CategoryCloset:
		return c.Closets
	}
	return 0
}

// Room is one tracked room and its floor type
type Room struct {
	Category  RoomCategory `json:"category" yaml:"category"`
	Ordinal   int          `json:"ordinal" yaml:"ordinal"`
	Label     string       `json:"label" yaml:"label"`
	FloorType FloorType    `json:"floor_type" yaml:"floor_type"`
}

// NewRoom returns a carpeted room labelled "<category> <ordinal>".
func NewRoom(cat RoomCategory, ordinal int) Room {
	return Room{
		Category:  cat,
		Ordinal:   ordinal,
		Label:     fmt.Sprintf("%s %d", cat.DisplayName(), ordinal),
		FloorType: FloorCarpet,
	}
}

// Key identifies a room across regenerations.
func (r Room) Key() string {
	return fmt.Sprintf("%s#%d", r.Category, r.Ordinal)
}
