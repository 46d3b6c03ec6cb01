package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool the HTTP layer needs for readiness
// checks. Satisfied by *pgxpool.Pool.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool creates a pgx connection pool and verifies connectivity
func NewPool(ctx context.Context, connString string, maxConns int32, maxConnLifetime time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToParseConnString, err)
	}

	cfg.MaxConns = maxConns
	cfg.MaxConnLifetime = maxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf(ErrMsgFailedToPing, err)
	}

	return pool, nil
}
