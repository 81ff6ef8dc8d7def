package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func TestSquash(t *testing.T) {
	cases := map[string]string{
		"select 1":                         "select 1",
		"  SELECT\n\tbody\r\nFROM  snaps ": "SELECT body FROM snaps",
		"":                                 "",
	}
	for in, want := range cases {
		if got := squash(in); got != want {
			t.Errorf("squash(%q) = %q, want %q", in, got, want)
		}
	}
}

// trace runs one statement through the tracer with a fixed duration
func trace(t *testing.T, slow, took time.Duration, err error) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf).Level(zerolog.ErrorLevel), slow)
	at := time.Unix(1700000000, 0)
	tr.now = func() time.Time { return at }

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
		SQL:  "SELECT body\n  FROM codemix_snapshots WHERE name = $1",
		Args: []any{"default"},
	})
	at = at.Add(took)
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1"), Err: err})

	var line map[string]any
	if uerr := json.Unmarshal(buf.Bytes(), &line); uerr != nil {
		t.Fatalf("log line %q: %v", buf.String(), uerr)
	}
	return line
}

func TestTracerLevels(t *testing.T) {
	line := trace(t, 100*time.Millisecond, time.Millisecond, nil)
	if line["level"] != "debug" || line["slow"] != false || line["component"] != "pg" {
		t.Fatalf("fast: %v", line)
	}
	if line["sql"] != "SELECT body FROM codemix_snapshots WHERE name = $1" || line["args"] != float64(1) {
		t.Fatalf("fields: %v", line)
	}

	if line = trace(t, 100*time.Millisecond, 250*time.Millisecond, nil); line["level"] != "warn" || line["slow"] != true {
		t.Fatalf("slow: %v", line)
	}
	if line = trace(t, 0, time.Hour, nil); line["slow"] != false {
		t.Fatalf("slow disabled: %v", line)
	}
	if line = trace(t, 0, time.Millisecond, errors.New("relation does not exist")); line["level"] != "error" {
		t.Fatalf("error: %v", line)
	}
}

func TestTracerWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	NewTracer(zerolog.New(&buf), 0).TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if buf.Len() != 0 {
		t.Fatalf("logged without a start: %s", buf.String())
	}
}
