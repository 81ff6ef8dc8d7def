package domain

import (
	"context"
	"io"

	"codemix/internal/core/fusion"
	ldomain "codemix/internal/services/learning/domain"
)

// AnalyzerPort identifies the language of a text
type AnalyzerPort interface {
	Analyze(ctx context.Context, text string) fusion.Decision
	AnalyzeDetailed(ctx context.Context, text string) Result
	AnalyzeBatch(ctx context.Context, texts []string, jobs int) ([]Result, error)
}

// FeedbackPort accepts corrections
type FeedbackPort interface {
	SubmitCorrection(ctx context.Context, in CorrectionInput) (Receipt, error)
	Suggestions(text string) []ldomain.Suggestion
}

// StatsPort reports engine statistics
type StatsPort interface {
	Statistics(ctx context.Context) Statistics
}

// DictionaryPort swaps dictionaries at runtime
type DictionaryPort interface {
	LoadDictionary(code string, r io.Reader) error
	ReloadDictionary(path string) error
}

// EventSink persists decision events in batches
type EventSink interface {
	Write(ctx context.Context, xs []Event) error
}
