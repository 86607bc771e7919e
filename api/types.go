// Package api - Request and response types
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"cleaning-cost/core/pricing"
	"cleaning-cost/core/types"
)

// Percent is a percentage input. Anything that is not a number, or a
// string holding one, decodes as 0.
type Percent decimal.Decimal

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		d = decimal.Zero
	}
	*p = Percent(d)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(decimal.Decimal(p))
}

// ProfileInput is the wire form of a property profile
type ProfileInput struct {
	PropertyType types.PropertyType `json:"property_type"`
	SquareFeet   int                `json:"square_feet"`

	Bedrooms     int `json:"bedrooms"`
	Bathrooms    int `json:"bathrooms"`
	Kitchens     int `json:"kitchens"`
	DiningRooms  int `json:"dining_rooms"`
	LivingRooms  int `json:"living_rooms"`
	Offices      int `json:"offices"`
	Closets      int `json:"closets"`
	LaundryRooms int `json:"laundry_rooms"`

	HasPets      bool               `json:"has_pets"`
	HasKids      bool               `json:"has_kids"`
	HasBasement  bool               `json:"has_basement"`
	BasementSize types.BasementSize `json:"basement_size,omitempty"`

	CleanInsideOven   bool `json:"clean_inside_oven"`
	CleanInsideFridge bool `json:"clean_inside_fridge"`

	MarkupPercent            Percent `json:"markup_percent"`
	GeneralAdjustmentPercent Percent `json:"general_adjustment_percent"`
}

// Profile converts the input to a validated profile. A missing property
// type means house.
func (in ProfileInput) Profile() (types.PropertyProfile, error) {
	p := types.PropertyProfile{
		PropertyType:             in.PropertyType,
		SquareFeet:               in.SquareFeet,
		Bedrooms:                 in.Bedrooms,
		Bathrooms:                in.Bathrooms,
		Kitchens:                 in.Kitchens,
		DiningRooms:              in.DiningRooms,
		LivingRooms:              in.LivingRooms,
		Offices:                  in.Offices,
		Closets:                  in.Closets,
		LaundryRooms:             in.LaundryRooms,
		HasPets:                  in.HasPets,
		HasKids:                  in.HasKids,
		HasBasement:              in.HasBasement,
		BasementSize:             in.BasementSize,
		CleanInsideOven:          in.CleanInsideOven,
		CleanInsideFridge:        in.CleanInsideFridge,
		MarkupPercent:            decimal.Decimal(in.MarkupPercent),
		GeneralAdjustmentPercent: decimal.Decimal(in.GeneralAdjustmentPercent),
	}
	if p.PropertyType == "" {
		p.PropertyType = types.PropertyHouse
	}
	return p, p.Validate()
}

// EstimateRequest is the body of POST /v1/estimate. Rooms may be omitted,
// in which case an all-carpet list is generated from the profile counts.
type EstimateRequest struct {
	Profile ProfileInput `json:"profile"`
	Rooms   []types.Room `json:"rooms,omitempty"`
}

// EstimateResponse is the body returned by POST /v1/estimate
type EstimateResponse struct {
	RequestID string              `json:"request_id"`
	QuoteID   string              `json:"quote_id"`
	Prices    types.CadencePrices `json:"prices"`
	Quote     *pricing.Quote      `json:"quote"`
	Rooms     []types.Room        `json:"rooms"`
	Metadata  *ResponseMetadata   `json:"metadata,omitempty"`
}

// ResponseMetadata contains execution context
type ResponseMetadata struct {
	InputHash     string `json:"input_hash"`
	EngineVersion string `json:"engine_version"`
	RateTable     string `json:"rate_table"`
	DurationMs    int64  `json:"duration_ms"`
}

// RoomsRequest is the body of POST /v1/rooms. Previous is only consulted
// when the server preserves floor selections.
type RoomsRequest struct {
	Counts   types.RoomCounts `json:"counts"`
	Previous []types.Room     `json:"previous,omitempty"`
}

// FloorRequest is the body of POST /v1/rooms/floor. The room is addressed
// by Index, or by Label when Index is absent.
type FloorRequest struct {
	Rooms     []types.Room    `json:"rooms"`
	Index     *int            `json:"index,omitempty"`
	Label     string          `json:"label,omitempty"`
	FloorType types.FloorType `json:"floor_type"`
}

// RoomsResponse carries a room list
type RoomsResponse struct {
	Rooms []types.Room `json:"rooms"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
