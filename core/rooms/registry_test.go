package rooms

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

func labels(rooms []types.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.Label
	}
	return out
}

func TestRegenerate(t *testing.T) {
	got := Regenerate(types.RoomCounts{Bedrooms: 2, DiningRooms: 1, LivingRooms: 1})

	assert.Equal(t, []string{"Bedroom 1", "Bedroom 2", "Dining Room 1", "Living Room 1"}, labels(got))
	for _, r := range got {
		assert.Equal(t, types.FloorCarpet, r.FloorType, r.Label)
	}
}

func TestRegenerateCategoryOrder(t *testing.T) {
	got := Regenerate(types.RoomCounts{Bedrooms: 1, DiningRooms: 1, LivingRooms: 1, Offices: 2, Closets: 1})

	assert.Equal(t, []string{
		"Bedroom 1", "Dining Room 1", "Living Room 1", "Office 1", "Office 2", "Closet 1",
	}, labels(got))
}

func TestRegenerateEmptyAndNegative(t *testing.T) {
	assert.Empty(t, Regenerate(types.RoomCounts{}))
	assert.Empty(t, Regenerate(types.RoomCounts{Bedrooms: -3}))
}

func TestRegenerateClampsHugeCounts(t *testing.T) {
	got := Regenerate(types.RoomCounts{Bedrooms: math.MaxInt64 / 2, Closets: math.MaxInt64/2 + 10})

	require.Len(t, got, 2*types.CountLimit)
	assert.Equal(t, fmt.Sprintf("Bedroom %d", types.CountLimit), got[types.CountLimit-1].Label)
	assert.Equal(t, "Closet 1", got[types.CountLimit].Label)
}

func TestRegenerateResetsFloors(t *testing.T) {
	reg := NewRegistry(types.RoomCounts{Bedrooms: 2}, false)
	require.NoError(t, reg.SetFloor(0, types.FloorHardwoodOrTile))

	got := reg.UpdateCounts(types.RoomCounts{Bedrooms: 3})
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, types.FloorCarpet, r.FloorType, r.Label)
	}
}

func TestResumeRegistry(t *testing.T) {
	previous, err := SetFloor(Regenerate(types.RoomCounts{Bedrooms: 2, Offices: 1}), 1, types.FloorHardwoodOrTile)
	require.NoError(t, err)

	t.Run("unchanged counts keep the list", func(t *testing.T) {
		reg := ResumeRegistry(previous, false)
		got := reg.UpdateCounts(types.RoomCounts{Bedrooms: 2, Offices: 1})
		assert.Equal(t, previous, got)
	})

	t.Run("reset", func(t *testing.T) {
		reg := ResumeRegistry(previous, false)
		got := reg.UpdateCounts(types.RoomCounts{Bedrooms: 3})
		assert.Equal(t, []string{"Bedroom 1", "Bedroom 2", "Bedroom 3"}, labels(got))
		assert.Equal(t, types.FloorCarpet, got[1].FloorType)
	})

	t.Run("preserve", func(t *testing.T) {
		reg := ResumeRegistry(previous, true)
		got := reg.UpdateCounts(types.RoomCounts{Bedrooms: 3})
		assert.Equal(t, types.FloorHardwoodOrTile, got[1].FloorType)
		assert.Equal(t, types.FloorCarpet, got[2].FloorType)
	})

	t.Run("input not shared", func(t *testing.T) {
		reg := ResumeRegistry(previous, false)
		require.NoError(t, reg.SetFloor(0, types.FloorHardwoodOrTile))
		assert.Equal(t, types.FloorCarpet, previous[0].FloorType)
	})
}

func TestRegistryUnchangedCountsKeepFloors(t *testing.T) {
	counts := types.RoomCounts{Bedrooms: 2}
	reg := NewRegistry(counts, false)
	require.NoError(t, reg.SetFloor(1, types.FloorHardwoodOrTile))

	got := reg.UpdateCounts(counts)
	assert.Equal(t, types.FloorHardwoodOrTile, got[1].FloorType)
}

func TestReconcileKeepsFloorsByKey(t *testing.T) {
	reg := NewRegistry(types.RoomCounts{Bedrooms: 2, Offices: 1}, true)
	require.NoError(t, reg.SetFloor(1, types.FloorHardwoodOrTile)) // Bedroom 2
	require.NoError(t, reg.SetFloor(2, types.FloorHardwoodOrTile)) // Office 1

	got := reg.UpdateCounts(types.RoomCounts{Bedrooms: 1, DiningRooms: 1, Offices: 1})
	require.Equal(t, []string{"Bedroom 1", "Dining Room 1", "Office 1"}, labels(got))
	assert.Equal(t, types.FloorCarpet, got[0].FloorType)
	assert.Equal(t, types.FloorCarpet, got[1].FloorType)
	assert.Equal(t, types.FloorHardwoodOrTile, got[2].FloorType)
}

func TestSetFloorReturnsCopy(t *testing.T) {
	original := Regenerate(types.RoomCounts{Bedrooms: 1, LivingRooms: 1})

	updated, err := SetFloor(original, 1, types.FloorHardwoodOrTile)
	require.NoError(t, err)

	assert.Equal(t, types.FloorHardwoodOrTile, updated[1].FloorType)
	assert.Equal(t, types.FloorCarpet, original[1].FloorType)
	assert.Equal(t, types.FloorCarpet, updated[0].FloorType)
}

func TestSetFloorIndexOutOfRange(t *testing.T) {
	rooms := Regenerate(types.RoomCounts{Bedrooms: 2})

	for _, idx := range []int{-1, 2, 10} {
		_, err := SetFloor(rooms, idx, types.FloorHardwoodOrTile)
		require.Error(t, err, idx)
		assert.True(t, errors.IsType(err, errors.TypeIndex), idx)
	}
}

func TestSetFloorRejectsUnknownFloor(t *testing.T) {
	rooms := Regenerate(types.RoomCounts{Bedrooms: 1})

	_, err := SetFloor(rooms, 0, types.FloorType("marble"))
	assert.True(t, errors.IsType(err, errors.TypeInvalidEnum))
}

func TestIndexOf(t *testing.T) {
	rooms := Regenerate(types.RoomCounts{Bedrooms: 1, Closets: 2})

	idx, ok := IndexOf(rooms, "Closet 2")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = IndexOf(rooms, "Garage 1")
	assert.False(t, ok)
}
