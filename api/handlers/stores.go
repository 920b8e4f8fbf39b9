// api/handlers/stores.go
package handlers

import (
	"context"

	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/domain"
)

// MissionStore is implemented by storage.MissionRepo.
type MissionStore interface {
	ListMissions(ctx context.Context, mode core.ViewMode) (*domain.Table, error)
	GetMission(ctx context.Context, missionID int64) (*domain.Mission, error)
	CreateMission(ctx context.Context, m *domain.Mission) error
	UpdateMission(ctx context.Context, missionID int64, u *domain.MissionUpdate) error
	DeleteMission(ctx context.Context, missionID int64) error
}

// CatalogStore is implemented by storage.CatalogRepo.
type CatalogStore interface {
	ListAstronauts(ctx context.Context) (*domain.Table, error)
	ListAssignments(ctx context.Context) (*domain.Table, error)
	ListAssignmentsByAgency(ctx context.Context, agencyID int64) (*domain.Table, error)
	ListAgencies(ctx context.Context) (*domain.Table, error)
	ListCelestialBodies(ctx context.Context) (*domain.Table, error)
	ListLaunchSites(ctx context.Context) (*domain.Table, error)
}

// MissionLogStore is implemented by storage.MissionLogRepo.
type MissionLogStore interface {
	ListMissionLogs(ctx context.Context, missionID *int64) (*domain.Table, error)
	CreateMissionLog(ctx context.Context, entry *domain.MissionLog) error
	DeleteMissionLog(ctx context.Context, missionID int64, logDate string) error
}
