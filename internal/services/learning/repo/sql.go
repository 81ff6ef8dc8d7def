package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"codemix/internal/modkit/repokit"
	perr "codemix/internal/platform/errors"
	"codemix/internal/services/learning/domain"

	"github.com/jackc/pgx/v5"
)

// Dialect is the SQL flavour of a backend
type Dialect string

const (
	DialectPG     Dialect = "pg"
	DialectSQLite Dialect = "sqlite"
)

func (d Dialect) ph(n int) string {
	if d == DialectPG {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (d Dialect) schema() string {
	blob := "BLOB"
	if d == DialectPG {
		blob = "BYTEA"
	}
	return `CREATE TABLE IF NOT EXISTS codemix_snapshots (
		name      TEXT PRIMARY KEY,
		codec     TEXT NOT NULL,
		body      ` + blob + ` NOT NULL,
		saved_at  BIGINT NOT NULL
	)`
}

// SQL stores the snapshot as one msgpack row keyed by name, in Postgres or
// SQLite
type SQL struct {
	db      repokit.TxRunner
	dialect Dialect
	name    string
}

// NewSQL binds a snapshot row name to db
func NewSQL(db repokit.TxRunner, d Dialect, name string) *SQL {
	if name == "" {
		name = "default"
	}
	return &SQL{db: db, dialect: d, name: name}
}

// Kind implements Storage
func (s *SQL) Kind() string { return string(s.dialect) }

// Migrate creates the snapshot table
func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, s.dialect.schema()); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "migrate snapshots")
	}
	return nil
}

// Load implements Storage
func (s *SQL) Load(ctx context.Context) (*domain.Snapshot, error) {
	var (
		codec string
		body  []byte
	)
	q := `SELECT codec, body FROM codemix_snapshots WHERE name = ` + s.dialect.ph(1)
	err := s.db.QueryRow(ctx, q, s.name).Scan(&codec, &body)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load snapshot")
	}
	return Codec(codec).Decode(body)
}

// Save implements Storage
func (s *SQL) Save(ctx context.Context, snap *domain.Snapshot) error {
	body, err := CodecMsgpack.Encode(snap)
	if err != nil {
		return err
	}
	d := s.dialect
	q := fmt.Sprintf(`INSERT INTO codemix_snapshots (name, codec, body, saved_at)
		VALUES (%s, %s, %s, %s)
		ON CONFLICT (name) DO UPDATE SET codec = excluded.codec, body = excluded.body, saved_at = excluded.saved_at`,
		d.ph(1), d.ph(2), d.ph(3), d.ph(4))

	err = repokit.InTx(ctx, s.db, func(tx repokit.Queryer) error {
		_, err := tx.Exec(ctx, q, s.name, string(CodecMsgpack), body, snap.SavedAt.UnixMilli())
		return err
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "save snapshot")
	}
	return nil
}

// SavedAt reports when the snapshot row was last written
func (s *SQL) SavedAt(ctx context.Context) (time.Time, bool, error) {
	var ms int64
	err := s.db.QueryRow(ctx, `SELECT saved_at FROM codemix_snapshots WHERE name = `+s.dialect.ph(1), s.name).Scan(&ms)
	if isNoRows(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, perr.Wrap(err, perr.ErrorCodeDB, "snapshot timestamp")
	}
	return time.UnixMilli(ms).UTC(), true, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
