package service

import (
	"context"
	"runtime"

	"codemix/internal/services/analyze/domain"

	"golang.org/x/sync/errgroup"
)

// AnalyzeBatch analyzes texts with at most jobs workers; results keep the
// input order. It stops early only when ctx is cancelled.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string, jobs int) ([]domain.Result, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns one index, no lock needed
	out := make([]domain.Result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(texts)))
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.AnalyzeDetailed(gctx, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
