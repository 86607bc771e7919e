package estimator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

func TestEndToEnd(t *testing.T) {
	profile := types.DefaultProfile()
	list := RegenerateRooms(profile.Counts())
	require.Len(t, list, 3)

	list, err := SetRoomFloor(list, 2, types.FloorHardwoodOrTile)
	require.NoError(t, err)

	got, err := Estimate(profile, list)
	require.NoError(t, err)
	assert.True(t, got.Weekly.Equal(decimal.RequireFromString("124")), got.Weekly.String())
	assert.True(t, got.DeepClean.Equal(decimal.RequireFromString("248")), got.DeepClean.String())
}

func TestEstimateRejectsInvalidProfile(t *testing.T) {
	profile := types.DefaultProfile()
	profile.PropertyType = "igloo"

	_, err := Estimate(profile, nil)
	assert.True(t, errors.IsType(err, errors.TypeInvalidEnum))
}

func TestSetRoomFloorOutOfRange(t *testing.T) {
	_, err := SetRoomFloor(RegenerateRooms(types.RoomCounts{Bedrooms: 1}), 1, types.FloorCarpet)
	assert.True(t, errors.IsType(err, errors.TypeIndex))
}
