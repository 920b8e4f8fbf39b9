// internal/storage/mission_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/domain"
)

// Column headers per mission view mode
var (
	MissionColumns = []string{
		"Mission ID", "Mission Name", "Spacecraft ID", "Spacecraft", "Launch Site ID", "Launch Site",
		"Body ID", "Destination", "Agency ID", "Agency Name", "Agency's Role",
		"Start Date", "End Date", "Launch Date",
	}
	MissionsByAgencyColumns = []string{"Agency ID", "Agency Name", "Mission Count"}
	MarsMissionColumns      = []string{"Mission ID", "Mission Name", "Spacecraft", "Launch Site", "Launch Date"}
)

const (
	listMissionsSQL = `
	SELECT m.mission_id, m.mission_name, m.spacecraft_id, m.spacecraft_name,
	       m.site_id, l.site_name, m.body_id, cb.name,
	       p.agency_id, a.agency_name, p.role,
	       m.start_date, m.end_date, m.launch_date
	FROM Mission m
	JOIN LaunchSite l ON m.site_id = l.site_id
	JOIN CelestialBody cb ON m.body_id = cb.body_id
	LEFT JOIN ParticipateIn p ON m.mission_id = p.mission_id
	LEFT JOIN Agency a ON p.agency_id = a.agency_id
	ORDER BY m.mission_id`

	listMissionsByAgencySQL = `
	SELECT a.agency_id, a.agency_name, COUNT(p.mission_id) AS mission_count
	FROM Agency a
	LEFT JOIN ParticipateIn p ON a.agency_id = p.agency_id
	GROUP BY a.agency_id, a.agency_name
	ORDER BY mission_count DESC, a.agency_name`

	listMarsMissionsSQL = `
	SELECT m.mission_id, m.mission_name, m.spacecraft_name, l.site_name, m.launch_date
	FROM Mission m
	JOIN LaunchSite l ON m.site_id = l.site_id
	WHERE m.body_id IN (SELECT body_id FROM CelestialBody WHERE name = 'Mars')
	ORDER BY m.launch_date`

	getMissionSQL = `
	SELECT m.mission_id, m.mission_name, m.spacecraft_id, m.spacecraft_name, m.site_id, m.body_id,
	       m.start_date, m.end_date, m.launch_date, p.agency_id, p.role
	FROM Mission m
	LEFT JOIN ParticipateIn p ON m.mission_id = p.mission_id
	WHERE m.mission_id = ?`

	insertMissionSQL = `
	INSERT INTO Mission (mission_id, site_id, body_id, spacecraft_id, spacecraft_name, mission_name, start_date, end_date, launch_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateMissionSQL = `
	UPDATE Mission
	SET site_id = ?, body_id = ?, spacecraft_id = ?, spacecraft_name = ?, mission_name = ?,
	    start_date = ?, end_date = ?, launch_date = ?
	WHERE mission_id = ?`

	upsertParticipationSQL = `
	INSERT INTO ParticipateIn (mission_id, agency_id, role) VALUES (?, ?, ?)
	ON CONFLICT(mission_id) DO UPDATE SET agency_id = excluded.agency_id, role = excluded.role`
)

// MissionRepo implements mission reads and writes over the shared pool.
type MissionRepo struct {
	DB *sql.DB
}

// NewMissionRepo creates a new MissionRepo.
func NewMissionRepo(db *sql.DB) *MissionRepo {
	return &MissionRepo{DB: db}
}

// ListMissions runs the canned query behind the given view mode.
func (r *MissionRepo) ListMissions(ctx context.Context, mode core.ViewMode) (*domain.Table, error) {
	switch mode {
	case core.ViewByAgency:
		return queryTable(ctx, r.DB, "Mission", MissionsByAgencyColumns, listMissionsByAgencySQL)
	case core.ViewMars:
		return queryTable(ctx, r.DB, "Mission", MarsMissionColumns, listMarsMissionsSQL)
	case core.ViewAll, "":
		return queryTable(ctx, r.DB, "Mission", MissionColumns, listMissionsSQL)
	default:
		return nil, fmt.Errorf("%w: '%s'", core.ErrInvalidViewMode, mode)
	}
}

// GetMission loads one mission with its participating agency, if any.
func (r *MissionRepo) GetMission(ctx context.Context, missionID int64) (*domain.Mission, error) {
	return getMission(ctx, r.DB, missionID)
}

func getMission(ctx context.Context, q querier, missionID int64) (*domain.Mission, error) {
	var (
		m                                 domain.Mission
		name, craftName, start, end, role sql.NullString
		agencyID                          sql.NullInt64
	)
	err := q.QueryRowContext(ctx, getMissionSQL, missionID).Scan(
		&m.MissionID, &name, &m.SpacecraftID, &craftName, &m.SiteID, &m.BodyID,
		&start, &end, &m.LaunchDate, &agencyID, &role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMissionNotFound
		}
		customLog.Warnf("Storage: Failed to load mission %d: %v", missionID, err)
		return nil, fmt.Errorf("database error loading mission: %w", err)
	}

	m.MissionName = name.String
	m.SpacecraftName = craftName.String
	if start.Valid {
		m.StartDate = &start.String
	}
	if end.Valid {
		m.EndDate = &end.String
	}
	if agencyID.Valid {
		m.AgencyID = &agencyID.Int64
	}
	if role.Valid {
		m.Role = &role.String
	}
	return &m, nil
}

// CreateMission inserts the mission and, when both agency and role are given,
// its ParticipateIn row. Both statements share one transaction.
func (r *MissionRepo) CreateMission(ctx context.Context, m *domain.Mission) error {
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, "INSERT", "Mission", insertMissionSQL,
			m.MissionID, m.SiteID, m.BodyID, m.SpacecraftID, m.SpacecraftName, m.MissionName,
			m.StartDate, m.EndDate, m.LaunchDate,
		); err != nil {
			return err
		}
		if m.HasParticipation() {
			if _, err := exec(ctx, tx, "INSERT", "ParticipateIn", upsertParticipationSQL, m.MissionID, *m.AgencyID, *m.Role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		customLog.Warnf("Storage: Failed to create mission %d: %v", m.MissionID, err)
		return r.classifyWriteError(ctx, err, m)
	}
	return nil
}

// UpdateMission rewrites a mission and then inserts, updates or deletes its
// ParticipateIn row depending on whether the update carries both agency and role.
func (r *MissionRepo) UpdateMission(ctx context.Context, missionID int64, u *domain.MissionUpdate) error {
	var merged *domain.Mission
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		current, err := getMission(ctx, tx, missionID)
		if err != nil {
			return err
		}
		u.Apply(current)
		merged = current
		if err := core.CheckDateRange(merged.StartDate, merged.EndDate); err != nil {
			return err
		}

		if _, err := exec(ctx, tx, "UPDATE", "Mission", updateMissionSQL,
			merged.SiteID, merged.BodyID, merged.SpacecraftID, merged.SpacecraftName, merged.MissionName,
			merged.StartDate, merged.EndDate, merged.LaunchDate, missionID,
		); err != nil {
			return err
		}

		if merged.HasParticipation() {
			_, err = exec(ctx, tx, "UPSERT", "ParticipateIn", upsertParticipationSQL, missionID, *merged.AgencyID, *merged.Role)
		} else {
			_, err = exec(ctx, tx, "DELETE", "ParticipateIn", `DELETE FROM ParticipateIn WHERE mission_id = ?`, missionID)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrMissionNotFound) || errors.Is(err, core.ErrInvalidDate) {
			return err
		}
		customLog.Warnf("Storage: Failed to update mission %d: %v", missionID, err)
		return r.classifyWriteError(ctx, err, merged)
	}
	return nil
}

// DeleteMission removes a mission. Its ParticipateIn, AssignedTo and MissionLog
// rows go with it through ON DELETE CASCADE.
func (r *MissionRepo) DeleteMission(ctx context.Context, missionID int64) error {
	affected, err := exec(ctx, r.DB, "DELETE", "Mission", `DELETE FROM Mission WHERE mission_id = ?`, missionID)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete mission %d: %v", missionID, err)
		return fmt.Errorf("database error deleting mission: %w", err)
	}
	if affected == 0 {
		return ErrMissionNotFound
	}
	return nil
}

// CheckMissionReferences re-queries every table the mission points at and
// describes each reference that does not resolve.
func (r *MissionRepo) CheckMissionReferences(ctx context.Context, m *domain.Mission) ([]string, error) {
	checks := []struct {
		label, table, column string
		id                   *int64
	}{
		{"Launch Site ID", "LaunchSite", "site_id", &m.SiteID},
		{"Spacecraft ID", "Spacecraft", "spacecraft_id", &m.SpacecraftID},
		{"Celestial Body ID", "CelestialBody", "body_id", &m.BodyID},
		{"Agency ID", "Agency", "agency_id", m.AgencyID},
	}

	var problems []string
	for _, check := range checks {
		if check.id == nil {
			continue
		}
		var n int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", check.table, check.column)
		if err := r.DB.QueryRowContext(ctx, query, *check.id).Scan(&n); err != nil {
			return problems, fmt.Errorf("failed to check %s: %w", check.table, err)
		}
		if n == 0 {
			problems = append(problems, fmt.Sprintf("%s \"%d\" does not exist", check.label, *check.id))
		}
	}
	return problems, nil
}

func (r *MissionRepo) classifyWriteError(ctx context.Context, err error, m *domain.Mission) error {
	switch {
	case isForeignKeyViolation(err):
		refErr := &ReferenceError{Message: "FAILURE: Invalid foreign key references."}
		if m != nil {
			details, checkErr := r.CheckMissionReferences(ctx, m)
			if checkErr != nil {
				customLog.Warnf("Storage: Reference diagnostics incomplete: %v", checkErr)
			}
			refErr.Details = details
		}
		if len(refErr.Details) == 0 {
			refErr.Details = []string{"A referenced record does not exist"}
		}
		return refErr
	case isDuplicateKey(err) && m != nil:
		return fmt.Errorf("%w: mission_id %d", ErrDuplicateKey, m.MissionID)
	case isDuplicateKey(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return fmt.Errorf("database error writing mission: %w", err)
	}
}
