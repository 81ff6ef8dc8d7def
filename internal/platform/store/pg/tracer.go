package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type traceKey struct{}

type traceStart struct {
	sql  string
	args int
	at   time.Time
}

// Tracer logs statements through zerolog. It is installed as the pgx
// QueryTracer so transactions are traced too.
type Tracer struct {
	log  zerolog.Logger
	slow time.Duration
	now  func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer logs at debug regardless of the root level; slow <= 0 never warns
func NewTracer(log zerolog.Logger, slow time.Duration) *Tracer {
	return &Tracer{
		log:  log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
		slow: slow,
		now:  time.Now,
	}
}

// TraceQueryStart implements pgx.QueryTracer
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, args: len(d.Args), at: t.now()})
}

// TraceQueryEnd implements pgx.QueryTracer
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	took := t.now().Sub(st.at)
	slow := t.slow > 0 && took >= t.slow

	ev := t.log.Debug()
	switch {
	case d.Err != nil:
		ev = t.log.Error().Err(d.Err)
	case slow:
		ev = t.log.Warn()
	}
	ev.Str("sql", squash(st.sql)).
		Int("args", st.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Dur("took", took).
		Bool("slow", slow).
		Msg("pg query")
}

// squash collapses whitespace runs so statements log on one line
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
