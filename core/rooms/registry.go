// Package rooms derives the per-room list that floor types are tracked on.
package rooms

import (
	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

// Regenerate builds a fresh room list from counts: bedrooms, dining rooms,
// living rooms, offices, then closets, numbered from 1 and all carpeted.
// The result replaces any previous list; earlier floor choices are not
// carried over. Each category is clamped to types.CountLimit, so callers
// should validate counts first.
func Regenerate(counts types.RoomCounts) []types.Room {
	cats := types.RoomCategories()
	per := make([]int, len(cats))
	total := 0
	for i, cat := range cats {
		per[i] = min(max(counts.For(cat), 0), types.CountLimit)
		total += per[i]
	}

	out := make([]types.Room, 0, total)
	for i, cat := range cats {
		for n := 1; n <= per[i]; n++ {
			out = append(out, types.NewRoom(cat, n))
		}
	}
	return out
}

// Reconcile regenerates from counts and keeps the floor type of every room
// whose category and ordinal still exist in previous.
func Reconcile(previous []types.Room, counts types.RoomCounts) []types.Room {
	floors := make(map[string]types.FloorType, len(previous))
	for _, r := range previous {
		floors[r.Key()] = r.FloorType
	}

	out := Regenerate(counts)
	for i := range out {
		if f, ok := floors[out[i].Key()]; ok {
			out[i].FloorType = f
		}
	}
	return out
}

// SetFloor returns a copy of rooms with the floor type at index replaced.
// The input slice is left untouched.
func SetFloor(rooms []types.Room, index int, floor types.FloorType) ([]types.Room, error) {
	if index < 0 || index >= len(rooms) {
		return nil, errors.IndexOutOfRange(index, len(rooms))
	}
	if !floor.IsValid() {
		return nil, errors.InvalidEnum("floor type", string(floor), floorStrings())
	}

	out := make([]types.Room, len(rooms))
	copy(out, rooms)
	out[index].FloorType = floor
	return out, nil
}

// IndexOf finds a room by its label.
func IndexOf(rooms []types.Room, label string) (int, bool) {
	for i, r := range rooms {
		if r.Label == label {
			return i, true
		}
	}
	return -1, false
}

// Registry keeps the current room list of one editing session and applies
// the configured regeneration policy when counts change. It is not safe
// for concurrent use.
type Registry struct {
	preserveFloors bool
	counts         types.RoomCounts
	rooms          []types.Room
}

// NewRegistry creates a registry seeded from counts.
func NewRegistry(counts types.RoomCounts, preserveFloors bool) *Registry {
	return &Registry{
		preserveFloors: preserveFloors,
		counts:         counts,
		rooms:          Regenerate(counts),
	}
}

// ResumeRegistry continues a session from a previously generated room list.
// The current counts are the number of rooms per category in previous.
func ResumeRegistry(previous []types.Room, preserveFloors bool) *Registry {
	rooms := make([]types.Room, len(previous))
	copy(rooms, previous)
	return &Registry{
		preserveFloors: preserveFloors,
		counts:         countsOf(previous),
		rooms:          rooms,
	}
}

func countsOf(list []types.Room) types.RoomCounts {
	var c types.RoomCounts
	for _, r := range list {
		switch r.Category {
		case types.CategoryBedroom:
			c.Bedrooms++
		case types.CategoryDiningRoom:
			c.DiningRooms++
		case types.CategoryLivingRoom:
			c.LivingRooms++
		case types.CategoryOffice:
			c.Offices++
		case types.CategoryCloset:
			c.Closets++
		}
	}
	return c
}

// Rooms returns a copy of the current room list.
func (r *Registry) Rooms() []types.Room {
	out := make([]types.Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// UpdateCounts regenerates the room list when counts differ from the
// current ones.
func (r *Registry) UpdateCounts(counts types.RoomCounts) []types.Room {
	if counts == r.counts {
		return r.Rooms()
	}
	r.counts = counts
	if r.preserveFloors {
		r.rooms = Reconcile(r.rooms, counts)
	} else {
		r.rooms = Regenerate(counts)
	}
	return r.Rooms()
}

// SetFloor changes one room's floor type.
func (r *Registry) SetFloor(index int, floor types.FloorType) error {
	updated, err := SetFloor(r.rooms, index, floor)
	if err != nil {
		return err
	}
	r.rooms = updated
	return nil
}

func floorStrings() []string {
	out := make([]string, 0, 2)
	for _, f := range types.FloorTypes() {
		out = append(out, string(f))
	}
	return out
}
