package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func openLiteStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, Config{Lite: LiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "learning.db")}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	return s
}

func TestOpenOnlyEnabledBackends(t *testing.T) {
	s := openLiteStore(t)
	if s.Lite == nil || s.PG != nil || s.CH != nil {
		t.Fatalf("backends PG=%T CH=%T Lite=%T", s.PG, s.CH, s.Lite)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
}

func TestOpenFailures(t *testing.T) {
	ctx := context.Background()
	cases := map[string]Config{
		"bad pg url":   {PG: PGConfig{Enabled: true, URL: "://bad"}},
		"empty ch url": {CH: CHConfig{Enabled: true}},
		"empty lite":   {Lite: LiteConfig{Enabled: true}},
	}
	for name, cfg := range cases {
		if s, err := Open(ctx, cfg); err == nil || s != nil {
			t.Errorf("%s: store=%v err=%v", name, s, err)
		}
	}
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	s, err := Open(ctx, Config{}, WithLogger(zerolog.New(&buf)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Log.Info().Msg("opened")
	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Fatalf("logger not applied: %s", buf.String())
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var nilStore *Store
	if nilStore.Guard(ctx) == nil || nilStore.Close(ctx) != nil {
		t.Fatal("nil store: Guard should fail and Close should not")
	}
}

type pingFail struct{ TxRunner }

func (pingFail) Ping(context.Context) error { return errors.New("connection refused") }

func TestGuardNamesFailingBackend(t *testing.T) {
	s := &Store{PG: pingFail{}}
	err := s.Guard(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "pg: ") {
		t.Fatalf("Guard = %v", err)
	}
}

func TestSQLiteTx(t *testing.T) {
	ctx := context.Background()
	db := openLiteStore(t).Lite

	if _, err := db.Exec(ctx, `CREATE TABLE hits (word TEXT PRIMARY KEY, n INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := db.Tx(ctx, func(q RowQuerier) error {
		tag, err := q.Exec(ctx, `INSERT INTO hits (word, n) VALUES (?, ?), (?, ?)`, "nahi", 3, "kal", 1)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != 2 || tag.String() != "ROWS 2" {
			t.Errorf("tag = %s", tag)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	rollback := errors.New("rollback")
	err = db.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `DELETE FROM hits`); err != nil {
			return err
		}
		return rollback
	})
	if !errors.Is(err, rollback) {
		t.Fatalf("tx err = %v", err)
	}

	var total int
	if err := db.QueryRow(ctx, `SELECT SUM(n) FROM hits`).Scan(&total); err != nil || total != 4 {
		t.Fatalf("sum = %d %v", total, err)
	}

	rows, err := db.Query(ctx, `SELECT word, n FROM hits ORDER BY word`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()
	if cols := rows.Columns(); len(cols) != 2 || cols[0] != "word" {
		t.Fatalf("columns = %v", cols)
	}
	var words []string
	for rows.Next() {
		var w string
		var n int
		if err := rows.Scan(&w, &n); err != nil {
			t.Fatal(err)
		}
		words = append(words, w)
	}
	if rows.Err() != nil || strings.Join(words, ",") != "kal,nahi" {
		t.Fatalf("words = %v %v", words, rows.Err())
	}
}
