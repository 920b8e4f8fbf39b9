// cmd/server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/missiondb/mission-dashboard/config" // Import config loading
	"github.com/missiondb/mission-dashboard/internal/logger"
	"github.com/missiondb/mission-dashboard/internal/server"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting Mission Dashboard server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Serve until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		customLog.Errorf("Server stopped with error: %v", err)
		stop()
		os.Exit(1)
	}
}
