// Package estimator exposes the three operations a presentation layer
// needs: price a profile, rebuild the room list, and change a room's floor.
package estimator

import (
	"cleaning-cost/core/pricing"
	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
)

var defaultEngine = pricing.NewEngine(pricing.Formula())

// Estimate prices profile over the formula rate table. The profile is
// validated first so that bad enumerations never reach the engine.
func Estimate(profile types.PropertyProfile, list []types.Room) (types.CadencePrices, error) {
	if err := profile.Validate(); err != nil {
		return types.CadencePrices{}, err
	}
	return defaultEngine.Estimate(profile, list), nil
}

// RegenerateRooms builds a fresh, all-carpet room list from counts.
func RegenerateRooms(counts types.RoomCounts) []types.Room {
	return rooms.Regenerate(counts)
}

// SetRoomFloor returns a copy of list with one room's floor replaced.
func SetRoomFloor(list []types.Room, index int, floor types.FloorType) ([]types.Room, error) {
	return rooms.SetFloor(list, index, floor)
}
