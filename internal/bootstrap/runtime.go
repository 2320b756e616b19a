// Package bootstrap wires runtime dependencies (database, cache, sessions)
// for the application's entry points.
package bootstrap

import (
	"fmt"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/session"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the initialized shared dependencies.
type Runtime struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *session.Store
}

// InitRuntime connects to the database and Redis and prepares the session
// store. Redis being unreachable is not fatal; sessions fall back to process
// memory and caching is skipped.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	sessions := session.NewStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)
	middleware.InitAuth(sessions)

	return &Runtime{
		DB:       db,
		Redis:    redisClient,
		Sessions: sessions,
	}, nil
}
