// internal/storage/database.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/missiondb/mission-dashboard/config"
	"github.com/missiondb/mission-dashboard/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// ConnectMissionDB opens the bounded connection pool for the mission database
// and makes sure the schema exists. The caller owns the pool and must Close it.
func ConnectMissionDB(cfg *config.Config) (*sql.DB, error) {
	db, err := OpenMissionDB(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = EnsureSchema(ctx, db, cfg.SchemaFile); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenMissionDB opens and pings the pool without touching the schema.
func OpenMissionDB(cfg *config.Config) (*sql.DB, error) {
	dbPath := cfg.DatabasePath()
	customLog.Printf("Storage: Initializing mission database: %s", dbPath)

	if err := os.MkdirAll(cfg.DatabaseDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.DatabaseDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Foreign keys are off by default in SQLite and the pragma is per connection,
	// so it goes into the DSN where every pooled connection picks it up.
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		customLog.Warnf("Storage: Failed to open mission db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open mission db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping mission db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to mission db: %w", err)
	}
	customLog.Println("Storage: Mission database connection successful.")
	return db, nil
}

// EnsureSchema provisions the schema (with seed data) when the Mission table is missing.
func EnsureSchema(ctx context.Context, db *sql.DB, schemaFile string) error {
	exists, err := tableExists(ctx, db, "Mission")
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists {
		customLog.Debugln("Storage: Schema present.")
		return nil
	}

	customLog.Println("Storage: Mission table missing, provisioning schema...")
	script, err := SchemaScript(schemaFile)
	if err != nil {
		return err
	}
	if _, err := ResetSchema(ctx, db, script); err != nil {
		return fmt.Errorf("failed to provision schema: %w", err)
	}
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
