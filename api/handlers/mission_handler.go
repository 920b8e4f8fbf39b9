// api/handlers/mission_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// MissionHandler holds dependencies for mission CRUD handlers.
type MissionHandler struct {
	Store MissionStore
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(store MissionStore) *MissionHandler {
	return &MissionHandler{Store: store}
}

// ListMissions handles GET /missions?view=all|by-agency|mars.
func (h *MissionHandler) ListMissions(c *gin.Context) {
	mode, err := core.ParseViewMode(c.Query("view"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.listMissions(c, mode)
}

// ListMissionsByAgency handles GET /missions/group-by.
func (h *MissionHandler) ListMissionsByAgency(c *gin.Context) {
	h.listMissions(c, core.ViewByAgency)
}

// ListMarsMissions handles GET /missions/nested.
func (h *MissionHandler) ListMarsMissions(c *gin.Context) {
	h.listMissions(c, core.ViewMars)
}

func (h *MissionHandler) listMissions(c *gin.Context, mode core.ViewMode) {
	table, err := h.Store.ListMissions(c.Request.Context(), mode)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.NewTableResponse(table))
}

// GetMission handles GET /missions/:mission_id.
func (h *MissionHandler) GetMission(c *gin.Context) {
	missionID, err := core.ParseID("mission_id", c.Param("mission_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	mission, err := h.Store.GetMission(c.Request.Context(), missionID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mission)
}

// CreateMission handles POST /missions.
func (h *MissionHandler) CreateMission(c *gin.Context) {
	var req models.MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %w", core.ErrInvalidRequest, err))
		return
	}

	mission, err := req.ToMission()
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Store.CreateMission(c.Request.Context(), mission); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Created mission %d (%s)", mission.MissionID, mission.MissionName)
	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Success"})
}

// UpdateMission handles PUT /missions/:mission_id. The id in the path wins
// over any mission_id in the body.
func (h *MissionHandler) UpdateMission(c *gin.Context) {
	missionID, err := core.ParseID("mission_id", c.Param("mission_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %w", core.ErrInvalidRequest, err))
		return
	}

	update, err := req.ToUpdate()
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Store.UpdateMission(c.Request.Context(), missionID, update); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Updated mission %d", missionID)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Mission updated successfully"})
}

// DeleteMission handles DELETE /missions/:mission_id.
func (h *MissionHandler) DeleteMission(c *gin.Context) {
	missionID, err := core.ParseID("mission_id", c.Param("mission_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Store.DeleteMission(c.Request.Context(), missionID); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Deleted mission %d", missionID)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Deleted"})
}
