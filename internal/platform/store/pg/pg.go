// Package pg opens the Postgres pool the learning snapshot can live in
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32

	// LogSQL logs every statement; Slow marks statements at or above it with warn
	LogSQL bool
	Slow   time.Duration

	// Attempts bounds the startup ping loop, 0 means 20
	Attempts int
}

var newPool = pgxpool.NewWithConfig

// Open builds the pool and pings it with capped backoff until the server
// answers, ctx ends or the attempts run out.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.LogSQL {
		pcfg.ConnConfig.Tracer = NewTracer(log, cfg.Slow)
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 20
	}
	if err := ping(ctx, pool, attempts); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func ping(ctx context.Context, pool *pgxpool.Pool, attempts int) error {
	wait := 150 * time.Millisecond
	var last error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		last = pool.Ping(pctx)
		cancel()
		if last == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, 2*time.Second)
	}
	return fmt.Errorf("pg: ping failed after %d attempts: %w", attempts, last)
}
