// cmd/missionctl/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/missiondb/mission-dashboard/config"
	"github.com/missiondb/mission-dashboard/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// newRootCmd builds the missionctl command tree. Configuration comes from the
// same environment variables as the server.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "missionctl",
		Short: "Operate the mission dashboard and its database",
		Long: `missionctl manages the mission dashboard.

Examples:
  missionctl serve
  missionctl check-db
  missionctl reset-db --yes`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(), newCheckDBCmd(), newResetDBCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		customLog.Errorf("missionctl: %v", err)
		stop()
		os.Exit(1)
	}
}
