// Package store opens the optional backends (Postgres, ClickHouse and
// SQLite) behind small seams repositories can fake
package store

import (
	"context"
	"errors"
	"fmt"

	"codemix/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Row scans one result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement changed
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn in one transaction,
// committing when fn returns nil
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam the event sink writes through
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds whichever backends Open enabled; the rest stay nil
type Store struct {
	Log logger.Logger

	PG   TxRunner
	CH   Clickhouse
	Lite TxRunner
}

// Open connects every enabled backend. When one fails the ones already
// open are closed again.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	fail := func(err error) (*Store, error) {
		_ = s.Close(ctx)
		return nil, err
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return fail(err)
		}
		s.PG = db
	}
	if cfg.CH.Enabled {
		db, err := openCH(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		s.CH = db
	}
	if cfg.Lite.Enabled {
		db, err := openLite(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		s.Lite = db
	}
	return s, nil
}

func (s *Store) each(fn func(name string, v any)) {
	if s.PG != nil {
		fn("pg", s.PG)
	}
	if s.CH != nil {
		fn("ch", s.CH)
	}
	if s.Lite != nil {
		fn("sqlite", s.Lite)
	}
}

// Guard pings every open backend that can be pinged
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	s.each(func(name string, v any) {
		if p, ok := v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// Close closes every open backend
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	s.each(func(name string, v any) {
		if c, ok := v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	})
	return errors.Join(errs...)
}
