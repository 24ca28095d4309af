package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gobishoftu/site/backend/internal/config"
	"github.com/gobishoftu/site/backend/internal/repo/memory"
	"github.com/gobishoftu/site/backend/migrations"
)

// Mode names the backend a Store talks to.
type Mode string

const (
	ModeDemo Mode = "demo"
	ModeLive Mode = "live"
)

// Backend is the Store selected at startup plus its lifecycle hook.
type Backend struct {
	Store Store
	Mode  Mode
	// Close releases the backend's resources. Always non-nil.
	Close func()
}

// Open selects and constructs the backend once, from configuration alone:
// live Postgres when credentials are set, the in-memory demo store otherwise.
// A live backend that later fails stays live; there is no runtime fallback.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Backend, error) {
	if !cfg.Live() {
		logger.Warn("no database credentials configured, running in demo mode")
		s := memory.NewStore(memory.WithReadDelay(cfg.DemoReadDelay), memory.WithLogger(logger))
		return Backend{Store: s, Mode: ModeDemo, Close: func() {}}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return Backend{}, fmt.Errorf("repo.Open: parse database url: %w", err)
	}
	poolCfg.ConnConfig.Password = cfg.DatabasePassword

	// NewWithConfig does not open connections immediately; the first query does.
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return Backend{}, fmt.Errorf("repo.Open: create pool: %w", err)
	}

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return Backend{}, fmt.Errorf("repo.Open: ping: %w", err)
	}
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		if err := migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return Backend{}, err
		}
	}

	return Backend{Store: NewStore(pool), Mode: ModeLive, Close: pool.Close}, nil
}

// migrate applies every pending embedded migration. goose needs database/sql,
// so the pool is wrapped rather than opening a second connection string.
func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	// sqlDB borrows connections from pool; pool.Close releases them.
	sqlDB := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("repo.migrate: create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("repo.migrate: up: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
