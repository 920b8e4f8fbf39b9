// api/router.go
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/missiondb/mission-dashboard/api/handlers"
	"github.com/missiondb/mission-dashboard/api/middleware" // Import middleware package
	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/config"
	"github.com/missiondb/mission-dashboard/internal/storage"
	"github.com/missiondb/mission-dashboard/web"
)

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(db *sql.DB, cfg *config.Config) *gin.Engine {
	models.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(cfg)))

	ratelimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	router.Use(middleware.RateLimitMiddleware(ratelimiter))
	// Runs after the handlers return, so it sees every error they attached.
	router.Use(middleware.ErrorHandler())

	// Initialize Handlers
	missionHandler := handlers.NewMissionHandler(storage.NewMissionRepo(db))
	catalogHandler := handlers.NewCatalogHandler(storage.NewCatalogRepo(db))
	logHandler := handlers.NewMissionLogHandler(storage.NewMissionLogRepo(db))

	// --- Service Routes ---
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "API is working!"})
	})
	router.GET("/health", healthHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Missions ---
	missions := router.Group("/missions")
	{
		missions.GET("", missionHandler.ListMissions)
		missions.GET("/group-by", missionHandler.ListMissionsByAgency)
		missions.GET("/nested", missionHandler.ListMarsMissions)
		missions.GET("/:mission_id", missionHandler.GetMission)
		missions.POST("", missionHandler.CreateMission)
		missions.PUT("/:mission_id", missionHandler.UpdateMission)
		missions.DELETE("/:mission_id", missionHandler.DeleteMission)
	}

	// --- Reference Data ---
	router.GET("/astronauts", catalogHandler.ListAstronauts)
	router.GET("/assignments", catalogHandler.ListAssignments)
	router.GET("/assignments/by-agency/:agency_id", catalogHandler.ListAssignmentsByAgency)
	router.GET("/agencies", catalogHandler.ListAgencies)
	router.GET("/celestial-bodies", catalogHandler.ListCelestialBodies)
	router.GET("/launch-sites", catalogHandler.ListLaunchSites)

	// --- Mission Logs ---
	logs := router.Group("/mission-logs")
	{
		logs.GET("", logHandler.ListMissionLogs)
		logs.POST("", logHandler.CreateMissionLog)
		logs.DELETE("/:mission_id/:log_date", logHandler.DeleteMissionLog)
	}

	// --- Dashboard ---
	assets := http.FS(web.Assets())
	router.StaticFS("/static", assets)
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", assets)
	})

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}

// healthHandler pings the pool; 503 when the database is unreachable.
func healthHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
	}
}
