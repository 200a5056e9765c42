package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config describes how to reach the store. It is built once at process start
// and handed to NewPool; nothing in this package keeps a global handle.
type Config struct {
	URL      string
	Schema   string
	MaxConns int32
	MinConns int32
}

// NewPool opens the connection pool and verifies it with a ping. The caller
// owns the pool and must Close it at shutdown.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = cfg.MinConns
	}
	if cfg.Schema != "" {
		if !schemaPattern.MatchString(cfg.Schema) {
			return nil, fmt.Errorf("invalid schema name: %s", cfg.Schema)
		}
		pcfg.ConnConfig.RuntimeParams["search_path"] = cfg.Schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
