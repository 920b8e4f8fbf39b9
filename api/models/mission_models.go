// api/models/mission_models.go
package models

import (
	"strings"

	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/domain"
)

// --- Mission Request Structs ---

// MissionRequest is the body of POST /missions. IDs travel as JSON numbers,
// dates as YYYY-MM-DD strings (or null).
type MissionRequest struct {
	MissionID      int64   `json:"mission_id" binding:"required,gt=0"`
	MissionName    string  `json:"mission_name" binding:"max=200"`
	SiteID         int64   `json:"site_id" binding:"required,gt=0"`
	BodyID         int64   `json:"body_id" binding:"required,gt=0"`
	SpacecraftID   int64   `json:"spacecraft_id" binding:"required,gt=0"`
	SpacecraftName string  `json:"spacecraft_name" binding:"max=200"`
	StartDate      *string `json:"start_date" binding:"omitempty,date"`
	EndDate        *string `json:"end_date" binding:"omitempty,date"`
	LaunchDate     string  `json:"launch_date" binding:"required,date"`
	AgencyID       *int64  `json:"agency_id" binding:"omitempty,gt=0"`
	Role           *string `json:"role" binding:"omitempty,max=100"`
}

// ToMission normalizes the dates and builds the domain mission.
func (r *MissionRequest) ToMission() (*domain.Mission, error) {
	launch, err := core.ParseDate(r.LaunchDate)
	if err != nil {
		return nil, err
	}
	start, err := core.ParseOptionalDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := core.ParseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	if err := core.CheckDateRange(start, end); err != nil {
		return nil, err
	}

	return &domain.Mission{
		MissionID:      r.MissionID,
		MissionName:    strings.TrimSpace(r.MissionName),
		SpacecraftID:   r.SpacecraftID,
		SpacecraftName: strings.TrimSpace(r.SpacecraftName),
		SiteID:         r.SiteID,
		BodyID:         r.BodyID,
		StartDate:      start,
		EndDate:        end,
		LaunchDate:     launch,
		AgencyID:       r.AgencyID,
		Role:           trimOptional(r.Role),
	}, nil
}

// UpdateMissionRequest is the body of PUT /missions/:mission_id. Every field is
// optional; the mission id comes from the path.
type UpdateMissionRequest struct {
	MissionName    *string `json:"mission_name" binding:"omitempty,max=200"`
	SiteID         *int64  `json:"site_id" binding:"omitempty,gt=0"`
	BodyID         *int64  `json:"body_id" binding:"omitempty,gt=0"`
	SpacecraftID   *int64  `json:"spacecraft_id" binding:"omitempty,gt=0"`
	SpacecraftName *string `json:"spacecraft_name" binding:"omitempty,max=200"`
	StartDate      *string `json:"start_date" binding:"omitempty,date"`
	EndDate        *string `json:"end_date" binding:"omitempty,date"`
	LaunchDate     *string `json:"launch_date" binding:"omitempty,date"`
	AgencyID       *int64  `json:"agency_id" binding:"omitempty,gt=0"`
	Role           *string `json:"role" binding:"omitempty,max=100"`
}

// ToUpdate normalizes the dates and builds the domain update. A date range
// is checked here when both ends are part of the request; the repository
// checks it again against the merged row.
func (r *UpdateMissionRequest) ToUpdate() (*domain.MissionUpdate, error) {
	start, err := core.ParseOptionalDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := core.ParseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	if err := core.CheckDateRange(start, end); err != nil {
		return nil, err
	}
	launch, err := core.ParseOptionalDate(r.LaunchDate)
	if err != nil {
		return nil, err
	}

	return &domain.MissionUpdate{
		MissionName:    trimOptional(r.MissionName),
		SiteID:         r.SiteID,
		BodyID:         r.BodyID,
		SpacecraftID:   r.SpacecraftID,
		SpacecraftName: trimOptional(r.SpacecraftName),
		StartDate:      start,
		EndDate:        end,
		LaunchDate:     launch,
		AgencyID:       r.AgencyID,
		Role:           trimOptional(r.Role),
	}, nil
}

// --- Mission Log Request Structs ---

// MissionLogRequest is the body of POST /mission-logs.
type MissionLogRequest struct {
	MissionID   int64  `json:"mission_id" binding:"required,gt=0"`
	LogDate     string `json:"log_date" binding:"required,date"`
	EntryType   string `json:"entry_type" binding:"max=100"`
	Status      string `json:"status" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// ToMissionLog normalizes the log date and builds the domain entry.
func (r *MissionLogRequest) ToMissionLog() (*domain.MissionLog, error) {
	logDate, err := core.ParseDate(r.LogDate)
	if err != nil {
		return nil, err
	}
	return &domain.MissionLog{
		MissionID:   r.MissionID,
		LogDate:     logDate,
		EntryType:   strings.TrimSpace(r.EntryType),
		Status:      strings.TrimSpace(r.Status),
		Description: strings.TrimSpace(r.Description),
	}, nil
}

// trimOptional trims s and treats a blank value as absent.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
