package store

import (
	"context"
	"time"

	chx "codemix/internal/platform/store/ch"
	"codemix/internal/platform/store/lite"
	"codemix/internal/platform/store/pg"
)

func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		LogSQL:   cfg.PG.LogSQL,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
	}, s.Log)
	if err != nil {
		return nil, err
	}
	return newPGPool(pool), nil
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.AppName, DialTimeout: cfg.CH.DialTimeout})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

func openLite(ctx context.Context, cfg Config) (TxRunner, error) {
	db, err := lite.Open(ctx, lite.Config{Path: cfg.Lite.Path, BusyTimeout: cfg.Lite.BusyTimeout})
	if err != nil {
		return nil, err
	}
	return NewSQLAdapter(db), nil
}
