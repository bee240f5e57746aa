package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Options configures the connection pool.
type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// SetupFunc runs once against a freshly connected pool, before it is handed
// out. Schema creation goes here.
type SetupFunc func(ctx context.Context, pool *pgxpool.Pool) error

func (o Options) poolConfig() (*pgxpool.Config, error) {
	if o.URL == "" {
		return nil, errors.New("database url is required")
	}
	cfg, err := pgxpool.ParseConfig(o.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = o.MaxConns
	}
	if o.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("min conns %d exceeds max conns %d", o.MinConns, cfg.MaxConns)
	}
	cfg.MinConns = o.MinConns
	return cfg, nil
}

// Connect opens a pool, runs each setup step and logs the pool statistics.
// The pool is closed again if any step or the health check fails.
func Connect(ctx context.Context, opts Options, logger zerolog.Logger, setup ...SetupFunc) (*pgxpool.Pool, error) {
	cfg, err := opts.poolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	for _, step := range setup {
		if err := step(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	stats, err := Check(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info().Object("pool", stats).Msg("connected to database")
	return pool, nil
}
