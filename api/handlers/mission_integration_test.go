// api/handlers/mission_integration_test.go
package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missiondb/mission-dashboard/api"
	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/config"
	"github.com/missiondb/mission-dashboard/internal/storage"
)

// testDBSetup creates a seeded temporary SQLite DB and returns the pool and config.
func testDBSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	tempDir := t.TempDir()
	testCfg := &config.Config{
		Env:                "test",
		ServerPort:         "0",
		DatabaseDir:        tempDir,
		DatabaseFile:       "test_missions.db",
		MaxOpenConns:       4,
		MaxIdleConns:       2,
		ConnMaxLifetime:    time.Minute,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimitPerMinute: 0,
	}

	db, err := storage.ConnectMissionDB(testCfg)
	require.NoError(t, err, "Failed to connect to test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return db, testCfg
}

// setupTestServer creates a test server instance with a test DB.
func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cfg := testDBSetup(t)
	server := httptest.NewServer(api.SetupRouter(db, cfg))
	t.Cleanup(server.Close)
	return server, db
}

func call(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out.Bytes()
}

func getTable(t *testing.T, url string) models.TableResponse {
	t.Helper()
	status, body := call(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var resp models.TableResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Equal(t, "table", resp.Type)
	return resp
}

func rowWithID(table models.TableResponse, id float64) []any {
	for _, row := range table.Rows {
		if row[0] == id {
			return row
		}
	}
	return nil
}

// TestMissionEndpoints walks the mission lifecycle through the full router.
func TestMissionEndpoints(t *testing.T) {
	server, db := setupTestServer(t)

	t.Run("Service routes", func(t *testing.T) {
		status, body := call(t, http.MethodGet, server.URL+"/test", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"message":"API is working!"}`, string(body))

		status, body = call(t, http.MethodGet, server.URL+"/health", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"status":"ok"`)

		status, body = call(t, http.MethodGet, server.URL+"/metrics", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "api_requests_total")
	})

	t.Run("Dashboard is served", func(t *testing.T) {
		status, body := call(t, http.MethodGet, server.URL+"/", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "Mission Dashboard")

		status, _ = call(t, http.MethodGet, server.URL+"/static/app.js", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("Every read returns a table", func(t *testing.T) {
		for _, path := range []string{
			"/missions", "/missions?view=by-agency", "/missions?view=mars", "/missions/group-by", "/missions/nested",
			"/astronauts", "/assignments", "/assignments/by-agency/1", "/agencies", "/celestial-bodies",
			"/launch-sites", "/mission-logs", "/mission-logs?mission_id=1",
		} {
			resp := getTable(t, server.URL+path)
			assert.NotEmpty(t, resp.Columns, path)
			for _, row := range resp.Rows {
				assert.Len(t, row, len(resp.Columns), path)
			}
		}
	})

	t.Run("Unknown view mode", func(t *testing.T) {
		status, _ := call(t, http.MethodGet, server.URL+"/missions?view=venus", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	newMission := map[string]any{
		"mission_id":      100,
		"mission_name":    "Europa Clipper",
		"spacecraft_id":   4,
		"spacecraft_name": "Clipper",
		"site_id":         1,
		"body_id":         4,
		"start_date":      "2024-10-14",
		"end_date":        nil,
		"launch_date":     "2024-10-14",
		"agency_id":       1,
		"role":            "Lead",
	}

	t.Run("Create then read back", func(t *testing.T) {
		status, body := call(t, http.MethodPost, server.URL+"/missions", newMission)
		require.Equal(t, http.StatusCreated, status, string(body))
		assert.JSONEq(t, `{"message":"Success"}`, string(body))

		row := rowWithID(getTable(t, server.URL+"/missions"), 100)
		require.NotNil(t, row, "created mission is listed")
		assert.Equal(t, "Europa Clipper", row[1])
		assert.Equal(t, "NASA", row[9])
		assert.Equal(t, "Lead", row[10])
		assert.Equal(t, "2024-10-14", row[13])

		status, body = call(t, http.MethodGet, server.URL+"/missions/100", nil)
		require.Equal(t, http.StatusOK, status)
		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Clipper", got["spacecraft_name"])
		assert.Nil(t, got["end_date"])
	})

	t.Run("Duplicate mission id", func(t *testing.T) {
		status, _ := call(t, http.MethodPost, server.URL+"/missions", newMission)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("Invalid references are named", func(t *testing.T) {
		bad := map[string]any{"mission_id": 101, "site_id": 99, "body_id": 1, "spacecraft_id": 1, "launch_date": "2025-01-01", "agency_id": 77, "role": "Lead"}
		status, body := call(t, http.MethodPost, server.URL+"/missions", bad)
		require.Equal(t, http.StatusBadRequest, status)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "FAILURE: Invalid foreign key references.", resp.Error)
		assert.ElementsMatch(t, []string{`Launch Site ID "99" does not exist`, `Agency ID "77" does not exist`}, resp.Details)

		status, _ = call(t, http.MethodGet, server.URL+"/missions/101", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Malformed date", func(t *testing.T) {
		bad := map[string]any{"mission_id": 102, "site_id": 1, "body_id": 1, "spacecraft_id": 1, "launch_date": "16/07/1969"}
		status, _ := call(t, http.MethodPost, server.URL+"/missions", bad)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Update replaces participation", func(t *testing.T) {
		update := map[string]any{"mission_name": "Europa Clipper (extended)", "agency_id": 3, "role": "Partner"}
		status, body := call(t, http.MethodPut, server.URL+"/missions/100", update)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.JSONEq(t, `{"message":"Mission updated successfully"}`, string(body))

		row := rowWithID(getTable(t, server.URL+"/missions"), 100)
		require.NotNil(t, row)
		assert.Equal(t, "Europa Clipper (extended)", row[1])
		assert.Equal(t, "ESA", row[9])
		assert.Equal(t, "2024-10-14", row[13], "launch date kept")

		status, _ = call(t, http.MethodPut, server.URL+"/missions/100", map[string]any{"mission_name": "Europa Clipper"})
		require.Equal(t, http.StatusOK, status)
		row = rowWithID(getTable(t, server.URL+"/missions"), 100)
		assert.Nil(t, row[8], "participation removed when agency is omitted")
	})

	t.Run("Update with end date before stored start date", func(t *testing.T) {
		status, body := call(t, http.MethodPut, server.URL+"/missions/100", map[string]any{"end_date": "1900-01-01"})
		require.Equal(t, http.StatusBadRequest, status, string(body))

		row := rowWithID(getTable(t, server.URL+"/missions"), 100)
		require.NotNil(t, row)
		assert.Nil(t, row[12], "end date unchanged")
	})

	t.Run("Update unknown mission", func(t *testing.T) {
		status, _ := call(t, http.MethodPut, server.URL+"/missions/999", map[string]any{"mission_name": "Ghost"})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Mission logs", func(t *testing.T) {
		entry := map[string]any{"mission_id": 100, "log_date": "2024-10-15", "entry_type": "Cruise", "status": "Nominal", "description": "Solar arrays deployed"}
		status, body := call(t, http.MethodPost, server.URL+"/mission-logs", entry)
		require.Equal(t, http.StatusCreated, status, string(body))

		logs := getTable(t, server.URL+"/mission-logs?mission_id=100")
		require.Len(t, logs.Rows, 1)
		assert.Equal(t, "Solar arrays deployed", logs.Rows[0][5])

		status, body = call(t, http.MethodPost, server.URL+"/mission-logs", map[string]any{"mission_id": 555, "log_date": "2024-10-15"})
		require.Equal(t, http.StatusBadRequest, status)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "Mission ID does not exist. Please create this Mission first.", resp.Error)

		status, _ = call(t, http.MethodDelete, server.URL+"/mission-logs/1/1969-07-20", nil)
		assert.Equal(t, http.StatusOK, status)
		status, _ = call(t, http.MethodDelete, server.URL+"/mission-logs/1/1969-07-20", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Delete cascades", func(t *testing.T) {
		status, body := call(t, http.MethodDelete, server.URL+"/missions/100", nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"message":"Deleted"}`, string(body))

		assert.Nil(t, rowWithID(getTable(t, server.URL+"/missions"), 100))
		assert.Empty(t, getTable(t, server.URL+"/mission-logs?mission_id=100").Rows)

		status, _ = call(t, http.MethodDelete, server.URL+"/missions/100", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Health reports a closed pool", func(t *testing.T) {
		_, cfg := testDBSetup(t)
		closed, err := storage.ConnectMissionDB(cfg)
		require.NoError(t, err)
		require.NoError(t, closed.Close())

		w := httptest.NewRecorder()
		api.SetupRouter(closed, cfg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM Mission`).Scan(&n))
	assert.Equal(t, 6, n, "only the seed missions remain")
}
