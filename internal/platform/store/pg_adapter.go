package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what a pool and a transaction share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQ adapts a pool or a transaction to RowQuerier
type pgQ struct{ q pgxQuerier }

func (a pgQ) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := a.q.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

func (a pgQ) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (a pgQ) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.q.QueryRow(ctx, sql, args...)
}

// pgPool is the Postgres TxRunner. Tracing happens in the pgx tracer, so
// statements inside Tx are logged the same way.
type pgPool struct {
	pgQ
	pool *pgxpool.Pool
}

func newPGPool(p *pgxpool.Pool) *pgPool { return &pgPool{pgQ: pgQ{p}, pool: p} }

func (a *pgPool) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error { return fn(pgQ{tx}) })
}

func (a *pgPool) Ping(ctx context.Context) error {
	if a == nil || a.pool == nil {
		return errors.New("store: nil postgres pool")
	}
	return a.pool.Ping(ctx)
}

func (a *pgPool) Close() error {
	a.pool.Close()
	return nil
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}
	return cols
}
