// api/models/responses.go
package models

import "github.com/missiondb/mission-dashboard/internal/domain"

// TableType tags every read response so the client can tell tables from messages.
const TableType = "table"

// TableResponse is the envelope of every read endpoint.
type TableResponse struct {
	Type    string   `json:"type"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTableResponse wraps a query result. Rows is never null on the wire.
func NewTableResponse(t *domain.Table) TableResponse {
	resp := TableResponse{Type: TableType, Columns: t.Columns, Rows: t.Rows}
	if resp.Rows == nil {
		resp.Rows = [][]any{}
	}
	return resp
}

// MessageResponse is returned by every successful write.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned by every failed request.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
