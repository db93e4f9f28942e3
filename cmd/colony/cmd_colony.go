package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	colonyapp "MoonColony/internal/colony/app"
	colonydomain "MoonColony/internal/colony/domain"
	reportapp "MoonColony/internal/report/app"
	world "MoonColony/internal/world/domain"
)

var zone int

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List buildable module types",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if err := app.catalog.Load(ctx); err != nil {
			return err
		}
		types, err := app.catalog.All()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOST\tPEOPLE\tSIZE\tLIVING")
		for _, t := range types {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%v\n", t.ID, t.Title, t.Cost, t.PeopleRequired, len(t.Cells()), t.IsLivingModule)
		}
		return w.Flush()
	},
}

var placeCmd = &cobra.Command{
	Use:   "place <type> <x> <z>",
	Short: "Place a module with its anchor at (x, z)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := ints(args)
		if err != nil {
			return err
		}
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if err := app.syncColony(ctx, userID); err != nil {
			return err
		}
		target := app.zoneOrDefault(zone)
		app.loadTerrain(ctx, target)
		a, err := app.placement.Place(ctx, colonyapp.PlaceRequest{
			UserID:       userID,
			ZoneID:       target,
			ModuleTypeID: nums[0],
			Anchor:       world.Coord{X: nums[1], Z: nums[2]},
		})
		if a != nil && a.State != colonydomain.Placed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.State, a.Reason)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Placed module %d at %s, materials left %.0f\n",
			*a.ServerID, a.Anchor, app.ledger.Value(colonydomain.ResourceConstruction))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <x> <z>",
	Short: "Remove the module covering (x, z)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := ints(args)
		if err != nil {
			return err
		}
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if err := app.syncColony(ctx, userID); err != nil {
			return err
		}
		b, err := app.placement.Remove(ctx, userID, world.Coord{X: nums[0], Z: nums[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s at %s\n", reportapp.ModuleName(b.ModuleTypeID), b.Anchor)
		return nil
	},
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List built modules with their terrain scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		mods, err := app.client.Modules(ctx, userID)
		if err != nil {
			return err
		}
		scores, err := app.client.Optimality(ctx, userID)
		if err != nil {
			return err
		}
		relief := make(map[int64]int, len(scores))
		for _, s := range scores {
			relief[s.ID] = s.Relief
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tZONE\tMODULE\tX\tZ\tRELIEF")
		for _, m := range mods {
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%d\t%d\n", m.ID, m.IDZone, reportapp.ModuleName(m.ModuleType), m.X, m.Y, relief[m.ID])
		}
		return w.Flush()
	},
}

func ints(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out = append(out, v)
	}
	return out, nil
}

func init() {
	placeCmd.Flags().IntVarP(&zone, "zone", "z", 0, "zone id (0 uses the default zone)")
}
