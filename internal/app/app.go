package app

import (
	"github.com/pathakpriyanka774/hrms-lite/internal/config"
	"github.com/pathakpriyanka774/hrms-lite/internal/messaging/kafka"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/connection"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/schema"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure described by cfg and mounts every module on router.
// The returned cleanup closes what was opened.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	closers := []func(){func() { _ = sqlDB.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if err := schema.Migrate(gormDB); err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("database ready", zap.String("driver", cfg.Database.Driver))

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
	} else {
		logger.Info("REDIS_ADDR not set, employee list cache disabled")
	}

	var outboxRepo kafka.OutboxRepository
	if cfg.OutboxEnabled() {
		outboxRepo = kafka.NewOutboxRepository(gormDB)
		logger.Info("outbox enabled", zap.String("broker", cfg.Kafka.Broker))
	}

	registerModules(router, Dependencies{
		DB:     gormDB,
		Redis:  rdb,
		Outbox: outboxRepo,
		Config: cfg,
		Logger: zap.L(),
	})

	return cleanup, nil
}
