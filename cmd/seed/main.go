package main

import (
	"context"

	"github.com/stroyprombeton/internal/cache"
	"github.com/stroyprombeton/internal/config"
	"github.com/stroyprombeton/internal/constants"
	"github.com/stroyprombeton/internal/logger"
	"github.com/stroyprombeton/internal/models"
	"github.com/stroyprombeton/internal/seed"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	summary, err := seed.Demo(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to seed demo catalog: %v", err)
	}

	// 分类树缓存失效，避免旧树残留
	if err := cache.InitRedis(&cfg.Redis); err == nil {
		_ = cache.Del(context.Background(), constants.CacheKeyCategoryTree, constants.CacheKeyPriceList)
	}

	logger.Infow("seed_demo_done",
		"categories", summary.Categories,
		"products", summary.Products,
		"options", summary.Options,
		"tags", summary.Tags,
	)
}
