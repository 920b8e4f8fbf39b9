// api/handlers/catalog_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/domain"
)

// CatalogHandler serves the read-only reference tables.
type CatalogHandler struct {
	Store CatalogStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{Store: store}
}

// respondTable runs a table query and writes the envelope.
func respondTable(c *gin.Context, query func(ctx context.Context) (*domain.Table, error)) {
	table, err := query(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.NewTableResponse(table))
}

func (h *CatalogHandler) ListAstronauts(c *gin.Context) {
	respondTable(c, h.Store.ListAstronauts)
}

func (h *CatalogHandler) ListAssignments(c *gin.Context) {
	respondTable(c, h.Store.ListAssignments)
}

// ListAssignmentsByAgency handles GET /assignments/by-agency/:agency_id.
func (h *CatalogHandler) ListAssignmentsByAgency(c *gin.Context) {
	agencyID, err := core.ParseID("agency_id", c.Param("agency_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondTable(c, func(ctx context.Context) (*domain.Table, error) {
		return h.Store.ListAssignmentsByAgency(ctx, agencyID)
	})
}

func (h *CatalogHandler) ListAgencies(c *gin.Context) {
	respondTable(c, h.Store.ListAgencies)
}

func (h *CatalogHandler) ListCelestialBodies(c *gin.Context) {
	respondTable(c, h.Store.ListCelestialBodies)
}

func (h *CatalogHandler) ListLaunchSites(c *gin.Context) {
	respondTable(c, h.Store.ListLaunchSites)
}
