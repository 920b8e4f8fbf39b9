// internal/storage/missionlog_repo.go
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/missiondb/mission-dashboard/internal/domain"
)

var MissionLogColumns = []string{"Mission ID", "Mission Name", "Log Date", "Entry Type", "Status", "Description"}

const listMissionLogsSQL = `
	SELECT ml.mission_id, m.mission_name, ml.log_date, ml.entry_type, ml.status, ml.description
	FROM MissionLog ml
	JOIN Mission m ON ml.mission_id = m.mission_id`

// MissionLogRepo handles the append/delete-only mission log.
type MissionLogRepo struct {
	DB *sql.DB
}

// NewMissionLogRepo creates a new MissionLogRepo.
func NewMissionLogRepo(db *sql.DB) *MissionLogRepo {
	return &MissionLogRepo{DB: db}
}

// ListMissionLogs returns the entries of one mission, or of all missions when
// missionID is nil, ordered by date.
func (r *MissionLogRepo) ListMissionLogs(ctx context.Context, missionID *int64) (*domain.Table, error) {
	if missionID != nil {
		return queryTable(ctx, r.DB, "MissionLog", MissionLogColumns,
			listMissionLogsSQL+` WHERE ml.mission_id = ? ORDER BY ml.log_date`, *missionID)
	}
	return queryTable(ctx, r.DB, "MissionLog", MissionLogColumns,
		listMissionLogsSQL+` ORDER BY ml.log_date, ml.mission_id`)
}

// CreateMissionLog appends an entry. The mission has to exist.
func (r *MissionLogRepo) CreateMissionLog(ctx context.Context, entry *domain.MissionLog) error {
	_, err := exec(ctx, r.DB, "INSERT", "MissionLog", `
	INSERT INTO MissionLog (mission_id, log_date, entry_type, status, description)
	VALUES (?, ?, ?, ?, ?)`,
		entry.MissionID, entry.LogDate, entry.EntryType, entry.Status, entry.Description,
	)
	if err == nil {
		return nil
	}

	customLog.Warnf("Storage: Failed to insert log entry for mission %d on %s: %v", entry.MissionID, entry.LogDate, err)
	switch {
	case isForeignKeyViolation(err):
		return &ReferenceError{
			Message: "Mission ID does not exist. Please create this Mission first.",
			Details: []string{fmt.Sprintf("Mission ID \"%d\" does not exist", entry.MissionID)},
		}
	case isDuplicateKey(err):
		return fmt.Errorf("%w: mission %d already has a log entry on %s", ErrDuplicateKey, entry.MissionID, entry.LogDate)
	default:
		return fmt.Errorf("database error inserting mission log: %w", err)
	}
}

// DeleteMissionLog removes the entry identified by (missionID, logDate).
func (r *MissionLogRepo) DeleteMissionLog(ctx context.Context, missionID int64, logDate string) error {
	affected, err := exec(ctx, r.DB, "DELETE", "MissionLog",
		`DELETE FROM MissionLog WHERE mission_id = ? AND log_date = ?`, missionID, logDate)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete log entry for mission %d on %s: %v", missionID, logDate, err)
		return fmt.Errorf("database error deleting mission log: %w", err)
	}
	if affected == 0 {
		return ErrMissionLogNotFound
	}
	return nil
}
