package main

import (
	"fmt"

	"github.com/spf13/cobra"

	colonydomain "MoonColony/internal/colony/domain"
)

var (
	linkType         string
	linkFrom, linkTo int
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List links between zones",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		links, err := app.links.List(ctx, userID)
		if err != nil {
			return err
		}
		printLinks(cmd, links)
		return nil
	},
}

var linksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Build a power line or a route between two zones",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := linkFromFlags()
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
		cost, err := app.links.Create(ctx, userID, l)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %s %d -> %d for %d materials\n", l.Type, l.Zone1, l.Zone2, cost)
		return nil
	},
}

var linksRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a link",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := linkFromFlags()
		if err != nil {
			return err
		}
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if err := app.links.Delete(ctx, userID, l); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %d -> %d\n", l.Type, l.Zone1, l.Zone2)
		return nil
	},
}

var linksOptimalCmd = &cobra.Command{
	Use:   "optimal",
	Short: "Show the suggested link layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		links, err := app.links.Optimal(ctx, userID)
		if err != nil {
			return err
		}
		printLinks(cmd, links)
		return nil
	},
}

func linkFromFlags() (colonydomain.Link, error) {
	l := colonydomain.Link{Zone1: linkFrom, Zone2: linkTo}
	switch linkType {
	case "power":
		l.Type = colonydomain.LinkPower
	case "route":
		l.Type = colonydomain.LinkRoute
	default:
		return l, fmt.Errorf("link type must be power or route, got %q", linkType)
	}
	return l, nil
}

func printLinks(cmd *cobra.Command, links []colonydomain.Link) {
	if len(links) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No links")
		return
	}
	for _, l := range links {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %d -> %d\n", l.Type, l.Zone1, l.Zone2)
	}
}

func init() {
	for _, c := range []*cobra.Command{linksAddCmd, linksRemoveCmd} {
		c.Flags().StringVarP(&linkType, "type", "t", "route", "power or route")
		c.Flags().IntVar(&linkFrom, "from", 0, "first zone id")
		c.Flags().IntVar(&linkTo, "to", 0, "second zone id")
	}
	linksCmd.AddCommand(linksAddCmd, linksRemoveCmd, linksOptimalCmd)
}
