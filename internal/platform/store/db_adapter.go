package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

// dbAdapter wraps a database/sql handle (SQLite) as RowQuerier + TxRunner
type dbAdapter struct {
	db *sql.DB
}

// NewSQLAdapter exposes db through the same seam as Postgres
func NewSQLAdapter(db *sql.DB) TxRunner { return &dbAdapter{db: db} }

func (a *dbAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sql: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *dbAdapter) Close() error { return a.db.Close() }

func (a *dbAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	res, err := a.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return sqlTag{res: res}, nil
}

func (a *dbAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	rs, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (a *dbAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return a.db.QueryRowContext(ctx, q, args...)
}

func (a *dbAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type sqlTx struct{ tx *sql.Tx }

func (t sqlTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return sqlTag{res: res}, nil
}

func (t sqlTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	rs, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (t sqlTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	return t.tx.QueryRowContext(ctx, q, args...)
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

type sqlTag struct{ res sql.Result }

func (t sqlTag) RowsAffected() int64 {
	n, _ := t.res.RowsAffected()
	return n
}

func (t sqlTag) String() string {
	return "ROWS " + strconv.FormatInt(t.RowsAffected(), 10)
}
