package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/spacematch/internal/cache"
	"github.com/oggyb/spacematch/internal/config"
	"github.com/oggyb/spacematch/internal/notify"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Notifier   notify.Notifier
	Logger     *slog.Logger
}

// New creates a new AppContext. A nil notifier drops events.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, notifier notify.Notifier, logger *slog.Logger) *AppContext {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Notifier:   notifier,
		Logger:     logger,
	}
}
