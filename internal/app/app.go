package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/config"
	"go-attendance/internal/employee"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/rbac"
	"go-attendance/internal/shared/connection"
	"go-attendance/internal/timesheet"
	"go-attendance/internal/wfh"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, migrates the schema, registers every
// module on router and seeds the bootstrap data. The returned cleanup closes
// the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("redis connection established")

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
	}

	if err := migrate(ctx, gormDB, sqlDB); err != nil {
		cleanup()
		return nil, err
	}

	mods, err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger)
	if err != nil {
		cleanup()
		return nil, err
	}

	if err := mods.rbac.LoadPolicy(ctx); err != nil {
		cleanup()
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	if err := mods.auth.SeedDefaultAdmin(ctx, cfg.DefaultAdmin); err != nil {
		cleanup()
		return nil, fmt.Errorf("seed default admin: %w", err)
	}
	if cfg.SeedSampleData {
		if err := mods.auth.SeedSampleEmployees(ctx); err != nil {
			log.Warn("seed sample employees failed", zap.Error(err))
		}
	}

	return cleanup, nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		cfg.Database.MaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

func migrate(ctx context.Context, gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&timesheet.Timesheet{},
		&wfh.Approval{},
		&auth.Admin{},
		&rbac.RolePermission{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return kafka.EnsureOutboxSchema(ctx, sqlDB)
}
