// internal/domain/models.go
package domain

// Mission is a row of the Mission table together with its (optional)
// participating agency.
type Mission struct {
	MissionID      int64   `json:"mission_id"`
	MissionName    string  `json:"mission_name"`
	SpacecraftID   int64   `json:"spacecraft_id"`
	SpacecraftName string  `json:"spacecraft_name"`
	SiteID         int64   `json:"site_id"`
	BodyID         int64   `json:"body_id"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	LaunchDate     string  `json:"launch_date"`
	AgencyID       *int64  `json:"agency_id"`
	Role           *string `json:"role"`
}

// HasParticipation reports whether both halves of the ParticipateIn row were supplied.
func (m *Mission) HasParticipation() bool {
	return m.AgencyID != nil && m.Role != nil && *m.Role != ""
}

// MissionLog is a single dated entry in a mission's log.
type MissionLog struct {
	MissionID   int64  `json:"mission_id"`
	LogDate     string `json:"log_date"`
	EntryType   string `json:"entry_type"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Table is a tabular query result: display headers plus positional rows.
type Table struct {
	Columns []string
	Rows    [][]any
}

// TableCount is the row count of one table, used by the database health check.
type TableCount struct {
	Table string
	Rows  int64
}

// MissionUpdate carries the fields of a mission update. Nil fields keep their
// stored value, except AgencyID and Role: the participation row is rewritten
// from whatever the update carries, so omitting either one removes it.
type MissionUpdate struct {
	MissionName    *string
	SpacecraftID   *int64
	SpacecraftName *string
	SiteID         *int64
	BodyID         *int64
	StartDate      *string
	EndDate        *string
	LaunchDate     *string
	AgencyID       *int64
	Role           *string
}

// Apply merges the update into m.
func (u *MissionUpdate) Apply(m *Mission) {
	if u.MissionName != nil {
		m.MissionName = *u.MissionName
	}
	if u.SpacecraftID != nil {
		m.SpacecraftID = *u.SpacecraftID
	}
	if u.SpacecraftName != nil {
		m.SpacecraftName = *u.SpacecraftName
	}
	if u.SiteID != nil {
		m.SiteID = *u.SiteID
	}
	if u.BodyID != nil {
		m.BodyID = *u.BodyID
	}
	if u.StartDate != nil {
		m.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		m.EndDate = u.EndDate
	}
	if u.LaunchDate != nil {
		m.LaunchDate = *u.LaunchDate
	}
	m.AgencyID = u.AgencyID
	m.Role = u.Role
}
