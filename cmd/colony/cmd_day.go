package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	colonydomain "MoonColony/internal/colony/domain"
	reportdomain "MoonColony/internal/report/domain"
)

var (
	runClock  bool
	tickEvery time.Duration
	finishRun bool
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Advance the colony by one day, or run the game clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := app.userID()
		if err != nil {
			return err
		}
		if runClock {
			return runGameClock(cmd, userID)
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if _, err := app.days.Status(ctx, userID); err != nil {
			return err
		}
		change, err := app.days.Advance(ctx, userID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Day %d\n", app.days.Day())
		if change == nil {
			return nil
		}
		for i, d := range change.Resources {
			if i < reportdomain.ResourceCount {
				fmt.Fprintf(out, "  %-12s %+d\n", reportdomain.ResourceLabels[i], d)
			}
		}
		if !change.Live {
			fmt.Fprintln(out, "The colony did not survive the day")
		}
		return nil
	},
}

// runGameClock 按 tickEvery 走游戏时钟直到收到退出信号，每跨一天推进一次。
func runGameClock(cmd *cobra.Command, userID int64) error {
	ctx := cmd.Context()
	if _, err := app.days.Status(ctx, userID); err != nil {
		return err
	}
	cancel := app.events.Subscribe(func(ev colonydomain.Event) {
		if ev.Kind == colonydomain.DayAdvanced {
			fmt.Fprintf(cmd.OutOrStdout(), "%s day %d\n", app.days.Clock().Now(), ev.Day)
		}
	})
	defer cancel()
	fmt.Fprintf(cmd.OutOrStdout(), "Clock started at %s, Ctrl+C to stop\n", app.days.Clock().Now())
	err := app.days.Run(ctx, userID, tickEvery)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show colonization progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := app.userID()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if finishRun {
			if err := app.days.Finish(ctx, userID); err != nil {
				return err
			}
		}
		st, err := app.days.Status(ctx, userID)
		if err != nil {
			return err
		}
		state := "alive"
		switch {
		case st.Finished:
			state = "finished"
		case !st.Live:
			state = "lost"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Day %d, colony %s\n", st.CurDay, state)
		return nil
	},
}

func init() {
	dayCmd.Flags().BoolVar(&runClock, "run", false, "run the game clock until interrupted")
	dayCmd.Flags().DurationVar(&tickEvery, "every", time.Second, "real time per game minute with --run")
	statusCmd.Flags().BoolVar(&finishRun, "finish", false, "finish colonization first")
}
