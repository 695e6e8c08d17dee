package app

import (
	"database/sql"
	"time"

	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/config"
	"go-attendance/internal/employee"
	"go-attendance/internal/geofence"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"
	"go-attendance/internal/rbac/infra"
	"go-attendance/internal/timesheet"
	"go-attendance/internal/wfh"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// modules exposes the services BuildApp needs after routing is in place.
type modules struct {
	auth auth.Service
	rbac rbac.Service
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) (*modules, error) {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	wfhRepo := wfh.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	evaluator := geofence.NewEvaluator(cfg.Offices, logger)
	timesheetService := timesheet.NewService(db, timesheetRepo, outboxRepo, time.Now, cfg.Location, logger)
	wfhService := wfh.NewService(db, wfhRepo, outboxRepo, rdb, logger)
	attendanceService := attendance.NewService(
		db, attendanceRepo, outboxRepo,
		evaluator, wfhService, timesheetService,
		attendance.Options{
			RequireTimesheetForSignOut: cfg.RequireTimesheetForSignOut,
			Location:                   cfg.Location,
			IsOfficeHours:              cfg.IsOfficeHours,
		},
		logger,
	)
	employeeService := employee.NewService(db, employeeRepo, attendanceRepo, outboxRepo, rdb, logger)
	authService := auth.NewService(
		authRepo, employeeRepo,
		auth.NewGoogleVerifier(cfg.GoogleClientID),
		evaluator,
		auth.Options{
			JWTSecret:              cfg.JWTSecret,
			EnforceGeofenceOnLogin: cfg.EnforceGeofenceOnLogin,
		},
		logger,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	attendanceHandler := attendance.NewHandler(attendanceService, rdb, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	geofenceHandler := geofence.NewHandler(evaluator)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	timesheetHandler := timesheet.NewHandler(timesheetService, logger)
	wfhHandler := wfh.NewHandler(wfhService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(logger.Named("http")))
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMiddleware)
		geofence.RegisterRoutes(api, geofenceHandler, authMiddleware)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, authMiddleware)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService, authMiddleware)
		wfh.RegisterRoutes(api, wfhHandler, rbacService, authMiddleware)
		employee.RegisterRoutes(api, employeeHandler, rbacService, authMiddleware)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, authMiddleware)
	}

	return &modules{auth: authService, rbac: rbacService}, nil
}
