// internal/storage/catalog_repo.go
package storage

import (
	"context"
	"database/sql"

	"github.com/missiondb/mission-dashboard/internal/domain"
)

var (
	AstronautColumns     = []string{"ID", "Name", "Nationality", "Date of Birth"}
	AssignmentColumns    = []string{"Astronaut", "Mission"}
	AgencyColumns        = []string{"Agency ID", "Agency Name", "Country"}
	CelestialBodyColumns = []string{"ID", "Name", "Type", "Atmosphere"}
	LaunchSiteColumns    = []string{"Site ID", "Site Name", "Location"}
)

// CatalogRepo serves the read-only reference views.
type CatalogRepo struct {
	DB *sql.DB
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{DB: db}
}

func (r *CatalogRepo) ListAstronauts(ctx context.Context) (*domain.Table, error) {
	return queryTable(ctx, r.DB, "Astronaut", AstronautColumns, `
	SELECT astronaut_id, astronaut_name, nationality, dob
	FROM Astronaut
	ORDER BY astronaut_id`)
}

func (r *CatalogRepo) ListAssignments(ctx context.Context) (*domain.Table, error) {
	return queryTable(ctx, r.DB, "AssignedTo", AssignmentColumns, `
	SELECT a.astronaut_name, m.mission_name
	FROM AssignedTo at
	JOIN Astronaut a ON a.astronaut_id = at.astronaut_id
	JOIN Mission m ON m.mission_id = at.mission_id
	ORDER BY m.mission_id, a.astronaut_name`)
}

// ListAssignmentsByAgency limits assignments to missions the agency participates in.
func (r *CatalogRepo) ListAssignmentsByAgency(ctx context.Context, agencyID int64) (*domain.Table, error) {
	return queryTable(ctx, r.DB, "AssignedTo", AssignmentColumns, `
	SELECT a.astronaut_name, m.mission_name
	FROM AssignedTo at
	JOIN Astronaut a ON a.astronaut_id = at.astronaut_id
	JOIN Mission m ON m.mission_id = at.mission_id
	JOIN ParticipateIn p ON p.mission_id = m.mission_id
	WHERE p.agency_id = ?
	ORDER BY m.mission_id, a.astronaut_name`, agencyID)
}

func (r *CatalogRepo) ListAgencies(ctx context.Context) (*domain.Table, error) {
	return queryTable(ctx, r.DB, "Agency", AgencyColumns, `
	SELECT agency_id, agency_name, country
	FROM Agency
	ORDER BY agency_id`)
}

func (r *CatalogRepo) ListCelestialBodies(ctx context.Context) (*domain.Table, error) {
	return queryTable(ctx, r.DB, "CelestialBody", CelestialBodyColumns, `
	SELECT body_id, name, cb_type, CASE has_atmosphere WHEN 1 THEN 'Yes' ELSE 'No' END
	FROM CelestialBody
	ORDER BY body_id`)
}

func (r *CatalogRepo) ListLaunchSites(ctx context.Context) (*domain.Table, error) {
	return queryTable(ctx, r.DB, "LaunchSite", LaunchSiteColumns, `
	SELECT site_id, site_name, location
	FROM LaunchSite
	ORDER BY site_id`)
}
