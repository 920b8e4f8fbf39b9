// api/handlers/mission_log_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/domain"
)

// MissionLogHandler holds dependencies for the mission log handlers.
type MissionLogHandler struct {
	Store MissionLogStore
}

// NewMissionLogHandler creates a new MissionLogHandler.
func NewMissionLogHandler(store MissionLogStore) *MissionLogHandler {
	return &MissionLogHandler{Store: store}
}

// ListMissionLogs handles GET /mission-logs with an optional ?mission_id= filter.
func (h *MissionLogHandler) ListMissionLogs(c *gin.Context) {
	missionID, err := core.ParseOptionalID("mission_id", c.Query("mission_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondTable(c, func(ctx context.Context) (*domain.Table, error) {
		return h.Store.ListMissionLogs(ctx, missionID)
	})
}

// CreateMissionLog handles POST /mission-logs.
func (h *MissionLogHandler) CreateMissionLog(c *gin.Context) {
	var req models.MissionLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %w", core.ErrInvalidRequest, err))
		return
	}

	entry, err := req.ToMissionLog()
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Store.CreateMissionLog(c.Request.Context(), entry); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Logged %s entry for mission %d", entry.LogDate, entry.MissionID)
	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Success"})
}

// DeleteMissionLog handles DELETE /mission-logs/:mission_id/:log_date.
func (h *MissionLogHandler) DeleteMissionLog(c *gin.Context) {
	missionID, err := core.ParseID("mission_id", c.Param("mission_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	logDate, err := core.ParseDate(c.Param("log_date"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Store.DeleteMissionLog(c.Request.Context(), missionID, logDate); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Deleted %s log entry of mission %d", logDate, missionID)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Deleted"})
}
