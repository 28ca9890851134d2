package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pathakpriyanka774/hrms-lite/internal/attendance"
	"github.com/pathakpriyanka774/hrms-lite/internal/config"
	"github.com/pathakpriyanka774/hrms-lite/internal/dashboard"
	"github.com/pathakpriyanka774/hrms-lite/internal/employee"
	"github.com/pathakpriyanka774/hrms-lite/internal/messaging/kafka"
	"github.com/pathakpriyanka774/hrms-lite/internal/middleware"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/apperror"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies are the shared clients handed to every module. Redis and Outbox may be nil.
type Dependencies struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Outbox kafka.OutboxRepository
	Config config.Config
	Logger *zap.Logger
}

func registerModules(router *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.L()
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger.Named("http")),
		middleware.CORS(deps.Config.CORS.AllowedOrigins),
	)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(deps.DB)
	attendanceRepo := attendance.NewRepository(deps.DB)
	dashboardRepo := dashboard.NewRepository(deps.DB)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(deps.DB, employeeRepo, deps.Outbox, deps.Redis, deps.Config.Redis.CacheTTL, logger)
	attendanceService := attendance.NewService(deps.DB, attendanceRepo, employeeRepo, deps.Outbox, logger)
	dashboardService := dashboard.NewService(deps.DB, dashboardRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)

	writeLimit := middleware.RateLimitByIP(rate.Limit(deps.Config.RateLimit.RPS), deps.Config.RateLimit.Burst)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "HRMS Lite API is running"})
	})
	router.GET("/healthz", healthz(deps.DB))
	router.NoRoute(func(c *gin.Context) {
		e := apperror.ErrNotFound
		response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
	})

	// --- Routes Registration ---
	// Versioned prefix plus the unprefixed paths existing clients call. Both share one write limiter.
	for _, g := range []*gin.RouterGroup{router.Group("/api/v1"), router.Group("")} {
		employee.RegisterRoutes(g, employeeHandler, writeLimit)
		attendance.RegisterRoutes(g, attendanceHandler, writeLimit)
		dashboard.RegisterRoutes(g, dashboardHandler)
	}
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			zap.L().Named("app.healthz").Warn("database ping failed", zap.Error(err))
			e := apperror.ErrServiceUnavailable
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"database": "up"})
	}
}
