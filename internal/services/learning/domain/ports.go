package domain

import (
	"context"

	"codemix/internal/core/fusion"
)

// CachePort is what the analyze path uses on every request
type CachePort interface {
	Lookup(sig string) (fusion.Decision, bool)
	Record(sig, text string, d fusion.Decision)
	Override(sig string) (string, bool)
	Served(d fusion.Decision)
	MaybeAutosave()
}

// CorrectionPort accepts user feedback
type CorrectionPort interface {
	Correct(ctx context.Context, in CorrectionInput) (Receipt, error)
	Suggestions(sig string) []Suggestion
}

// StatsPort reports cache statistics
type StatsPort interface {
	Stats() Stats
}

// LifecyclePort loads and flushes persisted state
type LifecyclePort interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Close(ctx context.Context) error
}
