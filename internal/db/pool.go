package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joebaillie21/daycipe.io/internal/middleware"
)

const (
	maxRetries    = 5
	retryInterval = 2 * time.Second

	defaultMaxConns = 10
	defaultMinConns = 2
)

// PoolConfig carries the connection settings for NewPool. Zero sizing
// values fall back to defaults suitable for a small deployment.
type PoolConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// sizing returns the pool limits with zero or inconsistent values
// normalized. MinConns never exceeds MaxConns.
func (pc PoolConfig) sizing() (maxConns, minConns int32) {
	maxConns = pc.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	minConns = pc.MinConns
	if minConns <= 0 {
		minConns = defaultMinConns
	}
	if minConns > maxConns {
		minConns = maxConns
	}
	return maxConns, minConns
}

// NewPool connects to Postgres, retrying while the database is still
// coming up.
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pc.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns, cfg.MinConns = pc.sizing()
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				middleware.Logger.Info().
					Int32("max_conns", cfg.MaxConns).
					Int32("min_conns", cfg.MinConns).
					Msg("database connected")
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		middleware.Logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", maxRetries).
			Err(err).
			Msg("database connection failed")
		if attempt < maxRetries {
			time.Sleep(retryInterval)
		}
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
}
