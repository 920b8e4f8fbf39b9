// internal/storage/schema.go
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/domain"
)

//go:embed schema.sql
var defaultSchema string

// KnownTables lists every table of the schema, dependents first, which is the
// order they have to be dropped in.
var KnownTables = []string{
	"MissionLog",
	"AssignedTo",
	"ParticipateIn",
	"Mission",
	"Astronaut",
	"Agency",
	"Spacecraft",
	"SpacecraftModel",
	"CelestialBody",
	"LaunchSite",
}

// SchemaScript returns the SQL definition at path, or the embedded default when path is empty.
func SchemaScript(path string) (string, error) {
	if path == "" {
		return defaultSchema, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		customLog.Warnf("Storage: Failed to read schema file '%s': %v", path, err)
		return "", fmt.Errorf("failed to read schema file: %w", err)
	}
	return string(raw), nil
}

// SplitStatements breaks a script into executable statements. Lines starting
// with "--" are dropped before splitting on ';'.
func SplitStatements(script string) []string {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ResetSchema drops every table in the database and replays script in a single
// transaction. It destroys all data and is meant for development resets only.
// Returns the number of statements executed from the script.
func ResetSchema(ctx context.Context, db *sql.DB, script string) (int, error) {
	stmts := SplitStatements(script)
	if len(stmts) == 0 {
		return 0, fmt.Errorf("schema script contains no statements")
	}

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		// Foreign keys between dropped tables are checked at commit, when all are gone.
		if _, err := tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to defer foreign keys: %w", err)
		}

		tables, err := dropOrder(ctx, tx)
		if err != nil {
			return err
		}
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(table))); err != nil {
				customLog.Warnf("Storage: Error dropping %s: %v", table, err)
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
			customLog.Debugf("Storage: Dropped %s", table)
		}

		for i, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				customLog.Warnf("Storage: Schema statement %d failed: %v\nSQL: %s", i+1, err, stmt)
				return fmt.Errorf("schema statement %d failed: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	customLog.Printf("Storage: Schema reset complete, %d statements executed.", len(stmts))
	return len(stmts), nil
}

// dropOrder returns the user tables present in the database that are not part
// of KnownTables, followed by KnownTables in their dependents-first order.
func dropOrder(ctx context.Context, tx *sql.Tx) ([]string, error) {
	known := make(map[string]bool, len(KnownTables))
	for _, name := range KnownTables {
		known[strings.ToLower(name)] = true
	}

	rows, err := tx.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("database error listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed processing table list: %w", err)
		}
		if !known[strings.ToLower(name)] {
			tables = append(tables, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading table list: %w", err)
	}
	return append(tables, KnownTables...), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// InspectDatabase lists the tables present in the database with their row counts.
func InspectDatabase(ctx context.Context, db *sql.DB) ([]domain.TableCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("database error listing tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed processing table list: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading table list: %w", err)
	}

	counts := make([]domain.TableCount, 0, len(names))
	for _, name := range names {
		if !core.IsValidIdentifier(name) {
			continue
		}
		var n int64
		if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", name)).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", name, err)
		}
		counts = append(counts, domain.TableCount{Table: name, Rows: n})
	}
	return counts, nil
}
