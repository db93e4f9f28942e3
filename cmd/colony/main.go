package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MoonColony/internal/api"
	"MoonColony/internal/shared/logs"
)

var (
	cfgPath string
	timeout time.Duration

	app *colonyApp
)

var rootCmd = &cobra.Command{
	Use:           "colony",
	Short:         "Moon colony client",
	Long:          `Plan a lunar colony against the colony backend: sign in, place modules, link zones, advance days and export the PDF report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newColonyApp(cmd.Context(), cfgPath)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default: configs/conf.yml searched upward)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for one command")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(catalogCmd, placeCmd, removeCmd, modulesCmd)
	rootCmd.AddCommand(linksCmd, dayCmd, statusCmd)
	rootCmd.AddCommand(reportCmd, terrainCmd)
}

// withTimeout 给单条命令加超时，day --run 这种长跑命令不走这里。
func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logs.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", api.MessageOf(err, err.Error()))
		os.Exit(1)
	}
}
