// Package repo provides the decision event sinks of the analyze service
package repo

import (
	"context"
	"sync"

	"codemix/internal/platform/store"
	"codemix/internal/services/analyze/domain"
)

// DefaultTable receives decision events
const DefaultTable = "codemix_decisions"

// CH writes events to a MergeTree table
type CH struct {
	db    store.Clickhouse
	table string
}

// NewCH binds a sink to table, DefaultTable when empty
func NewCH(db store.Clickhouse, table string) *CH {
	if table == "" {
		table = DefaultTable
	}
	return &CH{db: db, table: table}
}

// Table is the target table name
func (c *CH) Table() string { return c.table }

// Migrate creates the table when missing
func (c *CH) Migrate(ctx context.Context) error {
	return c.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+c.table+` (
			at                 DateTime64(3, 'UTC'),
			signature          String,
			language           LowCardinality(String),
			languages          Array(LowCardinality(String)),
			script             LowCardinality(String),
			method             LowCardinality(String),
			confidence         Float64,
			is_code_mixed      Bool,
			code_mixing_score  Float64,
			needs_conversion   Bool,
			cache_hit          Bool,
			bucket             LowCardinality(String),
			rune_len           UInt32,
			dictionary_version String,
			duration_us        UInt64
		)
		ENGINE = MergeTree
		PARTITION BY toYYYYMM(at)
		ORDER BY (language, at, signature)`)
}

// Write inserts one batch
func (c *CH) Write(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	return c.db.Insert(ctx, c.table, Rows(xs))
}

// Rows converts events into column ordered insert rows
func Rows(xs []domain.Event) [][]any {
	out := make([][]any, 0, len(xs))
	for _, e := range xs {
		langs := e.Languages
		if langs == nil {
			langs = []string{}
		}
		out = append(out, []any{
			e.At.UTC(),
			e.Signature,
			e.Language,
			langs,
			e.Script,
			e.Method,
			e.Confidence,
			e.IsCodeMixed,
			e.CodeMixingScore,
			e.NeedsConversion,
			e.CacheHit,
			e.Bucket,
			uint32(max(e.RuneLen, 0)),
			e.DictionaryVersion,
			uint64(max(e.Duration.Microseconds(), 0)),
		})
	}
	return out
}

// Nop discards events
type Nop struct{}

// Write implements domain.EventSink
func (Nop) Write(context.Context, []domain.Event) error { return nil }

// Memory keeps events for tests and the CLI
type Memory struct {
	mu     sync.Mutex
	events []domain.Event
}

// Write implements domain.EventSink
func (m *Memory) Write(_ context.Context, xs []domain.Event) error {
	m.mu.Lock()
	m.events = append(m.events, xs...)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of everything written
func (m *Memory) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Event(nil), m.events...)
}
