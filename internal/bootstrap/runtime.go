// Package bootstrap wires configuration, storage and observability together
// for the application binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"lifeline/internal/cache"
	"lifeline/internal/config"
	"lifeline/internal/database"
	"lifeline/internal/models"
	"lifeline/internal/observability"
	"lifeline/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with fake donors.
	SeedDemoData bool
}

// Runtime holds the shared process-level dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	shutdownTracing func(context.Context) error
}

// InitRuntime connects to the database and Redis, initializes tracing and
// optionally seeds demo data for development.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; a nil client degrades to no caching or rate limits.
	cache.InitRedis(cfg.RedisURL)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "lifeline-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	if opts.SeedDemoData {
		if err := seedIfEmpty(cfg, db); err != nil {
			return nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return &Runtime{
		DB:              db,
		Redis:           cache.GetClient(),
		shutdownTracing: shutdownTracing,
	}, nil
}

// Shutdown releases runtime resources not owned by the HTTP server.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(ctx); err != nil {
			log.Printf("error shutting down tracing: %v", err)
		}
	}
	cache.CloseRedis()
	return nil
}

// seedIfEmpty populates demo donors in development when the users table has
// no rows. Production databases are never touched.
func seedIfEmpty(cfg *config.Config, db *gorm.DB) error {
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("empty development database detected, seeding demo donors")
	return seed.NewSeeder(db).Run(seed.Options{
		NumDonors:   40,
		NumRequests: 30,
		NumRatings:  60,
	})
}
