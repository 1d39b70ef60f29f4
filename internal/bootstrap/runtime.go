// Package bootstrap wires the process-wide dependencies shared by the
// commands: database, Redis and optional demo data.
package bootstrap

import (
	"fmt"

	"github.com/Zarsham27/social-networking-web-app/internal/cache"
	"github.com/Zarsham27/social-networking-web-app/internal/config"
	"github.com/Zarsham27/social-networking-web-app/internal/database"
	"github.com/Zarsham27/social-networking-web-app/internal/middleware"
	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty development database with demo data.
	SeedDemo  bool
	SeedUsers int
	SeedPosts int
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// A nil Redis client means Redis was unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.InitRedis(cfg.RedisURL)

	if opts.SeedDemo && !cfg.IsProduction() {
		if err := seedIfEmpty(db, opts); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(db *gorm.DB, opts Options) error {
	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		middleware.Logger.Info("database already populated, skipping demo seed", "users", users)
		return nil
	}

	numUsers, numPosts := opts.SeedUsers, opts.SeedPosts
	if numUsers <= 0 {
		numUsers = 20
	}
	if numPosts <= 0 {
		numPosts = 100
	}
	_, err := seed.NewSeeder(db, seed.Options{}).Run(numUsers, numPosts, false)
	return err
}
