// Package cmd - rooms command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

// loadRooms reads a JSON room list as written by "rooms --format json".
func loadRooms(path string) ([]types.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, fmt.Sprintf("failed to read room list %s", path), err)
	}
	var list []types.Room
	if err := json.Unmarshal(data, &list); err != nil {
		if errors.TypeOf(err) != "" {
			return nil, err
		}
		return nil, errors.Parsing(fmt.Sprintf("failed to decode room list %s", path), err)
	}
	return list, nil
}

func newRoomsCmd() *cobra.Command {
	var (
		counts   types.RoomCounts
		floors   []string
		previous string
	)

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List the rooms that carry a floor type",
		Long: `Generate the room list for the given counts. Bedrooms, dining rooms,
living rooms, offices and closets each get one entry, all carpeted, and
--floor changes individual rooms.

With --previous, the counts update an earlier list. Floors are reset
unless --preserve-floors is set, in which case rooms that still exist
keep their floor type.

Examples:
  cleaning-cost rooms --bedrooms 3 --closets 2
  cleaning-cost rooms --offices 1 --floor "Office 1=hardwood_or_tile"
  cleaning-cost rooms --previous rooms.json --bedrooms 4 --preserve-floors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := runtimeFrom(cmd)
			if err := counts.Validate(); err != nil {
				return err
			}

			var reg *rooms.Registry
			if previous != "" {
				list, err := loadRooms(previous)
				if err != nil {
					return err
				}
				reg = rooms.ResumeRegistry(list, rt.cfg.Rooms.PreserveFloors)
				reg.UpdateCounts(counts)
			} else {
				reg = rooms.NewRegistry(counts, rt.cfg.Rooms.PreserveFloors)
			}

			list, err := applyFloors(reg.Rooms(), floors)
			if err != nil {
				return err
			}
			return rt.formatter.RenderRooms(cmd.OutOrStdout(), list)
		},
	}

	d := types.DefaultProfile().Counts()
	cmd.Flags().IntVar(&counts.Bedrooms, "bedrooms", d.Bedrooms, "number of bedrooms")
	cmd.Flags().IntVar(&counts.DiningRooms, "dining-rooms", d.DiningRooms, "number of dining rooms")
	cmd.Flags().IntVar(&counts.LivingRooms, "living-rooms", d.LivingRooms, "number of living rooms")
	cmd.Flags().IntVar(&counts.Offices, "offices", d.Offices, "number of offices")
	cmd.Flags().IntVar(&counts.Closets, "closets", d.Closets, "number of closets")
	cmd.Flags().StringArrayVar(&floors, "floor", nil, `room floor as "<room label>=<floor type>", repeatable`)
	cmd.Flags().StringVar(&previous, "previous", "", "JSON room list to update")
	return cmd
}
