package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	reportapp "MoonColony/internal/report/app"
	world "MoonColony/internal/world/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the colony PDF report",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, ok := app.session.Current()
		if !ok {
			_, err := app.userID()
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		path, err := app.reports.Generate(ctx, reportapp.ReportUser{ID: sess.UserID, Name: sess.Name})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
		return nil
	},
}

var exportZones []int

var terrainCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Terrain tools",
}

var terrainExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch zone terrain and store compressed snapshots for offline use",
	RunE: func(cmd *cobra.Command, args []string) error {
		zones := exportZones
		if len(zones) == 0 {
			zones = app.conf.Map.Zones
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		for _, z := range zones {
			t, err := app.terrain.Export(ctx, z)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Zone %d (%s): %d cells -> %s\n", z, t.Type, len(t.Cells), app.snapshots.Path(z))
		}
		return nil
	},
}

var showZone int

var terrainShowCmd = &cobra.Command{
	Use:   "show <x> <z>",
	Short: "Load zone terrain into the map and print one cell",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := ints(args)
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		n, err := app.terrain.Apply(ctx, app.grid, showZone)
		if err != nil {
			return err
		}
		at := world.Coord{X: nums[0], Z: nums[1]}
		c, ok := app.grid.Cell(at)
		if !ok {
			return world.ErrOutOfBounds.WithData("coord", at.String())
		}
		kind := "unknown"
		if c.ZoneType != nil {
			kind = string(*c.ZoneType)
		}
		state := "free"
		if c.IsOccupied {
			state = "occupied"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Zone %d (%s), %d cells loaded\n", showZone, kind, n)
		fmt.Fprintf(out, "Cell %s: height %.2f, slope %.2f, illumination %.0f, color %s, %s\n",
			at, c.Height, c.Angle, c.Illumination, hexColor(c.Color), state)
		return nil
	},
}

func hexColor(c world.RGB) string {
	b := func(v float64) int { return int(math.Round(v * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

func init() {
	terrainExportCmd.Flags().IntSliceVar(&exportZones, "zone", nil, "zone ids to export (default: map.zones)")
	terrainShowCmd.Flags().IntVarP(&showZone, "zone", "z", 0, "zone id")
	terrainCmd.AddCommand(terrainExportCmd, terrainShowCmd)
}
