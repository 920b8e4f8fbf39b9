// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/missiondb/mission-dashboard/api"
	"github.com/missiondb/mission-dashboard/config"
	"github.com/missiondb/mission-dashboard/internal/logger"
	"github.com/missiondb/mission-dashboard/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

const shutdownTimeout = 10 * time.Second

// Run opens the mission database, serves the API and dashboard on cfg.ServerPort
// and blocks until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.ConnectMissionDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize mission database: %w", err)
	}
	defer func() {
		customLog.Println("Closing mission database connection...")
		if err := db.Close(); err != nil {
			customLog.Printf("Error closing mission database: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           api.SetupRouter(db, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		customLog.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	customLog.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	customLog.Println("Server exited")
	return nil
}
