// api/handlers/catalog_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/missiondb/mission-dashboard/api/middleware"
	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/internal/domain"
	"github.com/missiondb/mission-dashboard/internal/storage"
)

// MockCatalogStore is a mock implementation of CatalogStore
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) table(args mock.Arguments) (*domain.Table, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *MockCatalogStore) ListAstronauts(ctx context.Context) (*domain.Table, error) {
	return m.table(m.Called(ctx))
}

func (m *MockCatalogStore) ListAssignments(ctx context.Context) (*domain.Table, error) {
	return m.table(m.Called(ctx))
}

func (m *MockCatalogStore) ListAssignmentsByAgency(ctx context.Context, agencyID int64) (*domain.Table, error) {
	return m.table(m.Called(ctx, agencyID))
}

func (m *MockCatalogStore) ListAgencies(ctx context.Context) (*domain.Table, error) {
	return m.table(m.Called(ctx))
}

func (m *MockCatalogStore) ListCelestialBodies(ctx context.Context) (*domain.Table, error) {
	return m.table(m.Called(ctx))
}

func (m *MockCatalogStore) ListLaunchSites(ctx context.Context) (*domain.Table, error) {
	return m.table(m.Called(ctx))
}

// MockMissionLogStore is a mock implementation of MissionLogStore
type MockMissionLogStore struct {
	mock.Mock
}

func (m *MockMissionLogStore) ListMissionLogs(ctx context.Context, missionID *int64) (*domain.Table, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *MockMissionLogStore) CreateMissionLog(ctx context.Context, entry *domain.MissionLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockMissionLogStore) DeleteMissionLog(ctx context.Context, missionID int64, logDate string) error {
	return m.Called(ctx, missionID, logDate).Error(0)
}

func setupCatalogRouter(catalog CatalogStore, logs MissionLogStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	models.RegisterValidators()

	ch := NewCatalogHandler(catalog)
	lh := NewMissionLogHandler(logs)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/astronauts", ch.ListAstronauts)
	router.GET("/assignments", ch.ListAssignments)
	router.GET("/assignments/by-agency/:agency_id", ch.ListAssignmentsByAgency)
	router.GET("/agencies", ch.ListAgencies)
	router.GET("/celestial-bodies", ch.ListCelestialBodies)
	router.GET("/launch-sites", ch.ListLaunchSites)
	router.GET("/mission-logs", lh.ListMissionLogs)
	router.POST("/mission-logs", lh.CreateMissionLog)
	router.DELETE("/mission-logs/:mission_id/:log_date", lh.DeleteMissionLog)
	return router
}

func TestCatalogHandler_Tables(t *testing.T) {
	table := &domain.Table{Columns: []string{"ID", "Name"}, Rows: [][]any{{1, "x"}}}
	catalog := new(MockCatalogStore)
	for _, method := range []string{"ListAstronauts", "ListAssignments", "ListAgencies", "ListCelestialBodies", "ListLaunchSites"} {
		catalog.On(method, mock.Anything).Return(table, nil)
	}
	catalog.On("ListAssignmentsByAgency", mock.Anything, int64(1)).Return(table, nil)
	router := setupCatalogRouter(catalog, new(MockMissionLogStore))

	for _, path := range []string{"/astronauts", "/assignments", "/assignments/by-agency/1", "/agencies", "/celestial-bodies", "/launch-sites"} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(router, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var resp models.TableResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "table", resp.Type)
			assert.Equal(t, table.Columns, resp.Columns)
			assert.Len(t, resp.Rows, 1)
		})
	}

	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/assignments/by-agency/nasa", nil).Code)
	catalog.AssertExpectations(t)
}

func TestCatalogHandler_StoreError(t *testing.T) {
	catalog := new(MockCatalogStore)
	catalog.On("ListAstronauts", mock.Anything).Return(nil, errors.New("database is locked"))
	router := setupCatalogRouter(catalog, new(MockMissionLogStore))

	w := doJSON(router, http.MethodGet, "/astronauts", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"database is locked"}`, w.Body.String())
}

func TestMissionLogHandler(t *testing.T) {
	logs := new(MockMissionLogStore)
	empty := &domain.Table{Columns: storage.MissionLogColumns}
	logs.On("ListMissionLogs", mock.Anything, (*int64)(nil)).Return(empty, nil)
	logs.On("ListMissionLogs", mock.Anything, mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 3 })).Return(empty, nil)
	logs.On("CreateMissionLog", mock.Anything, mock.MatchedBy(func(e *domain.MissionLog) bool {
		return e.MissionID == 3 && e.LogDate == "2020-06-01"
	})).Return(nil)
	logs.On("CreateMissionLog", mock.Anything, mock.MatchedBy(func(e *domain.MissionLog) bool { return e.MissionID == 404 })).Return(&storage.ReferenceError{
		Message: "Mission ID does not exist. Please create this Mission first.",
		Details: []string{`Mission ID "404" does not exist`},
	})
	logs.On("DeleteMissionLog", mock.Anything, int64(3), "2020-06-01").Return(nil)
	logs.On("DeleteMissionLog", mock.Anything, int64(3), "2020-06-02").Return(storage.ErrMissionLogNotFound)
	router := setupCatalogRouter(new(MockCatalogStore), logs)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/mission-logs", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/mission-logs?mission_id=3", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/mission-logs?mission_id=x", nil).Code)

	w := doJSON(router, http.MethodPost, "/mission-logs", map[string]any{"mission_id": 3, "log_date": "2020-06-01", "status": "Nominal"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/mission-logs", map[string]any{"mission_id": 404, "log_date": "2020-06-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{`Mission ID "404" does not exist`}, resp.Details)

	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/mission-logs", map[string]any{"mission_id": 3}).Code)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodDelete, "/mission-logs/3/2020-06-01", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodDelete, "/mission-logs/3/2020-06-02", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodDelete, "/mission-logs/3/tomorrow", nil).Code)
	logs.AssertExpectations(t)
}
