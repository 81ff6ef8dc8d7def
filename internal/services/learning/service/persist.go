package service

import (
	"context"

	"codemix/internal/services/learning/domain"
)

// Load replaces in memory state with the persisted snapshot. A missing or
// unreadable snapshot leaves the cache empty; it is logged, not returned.
func (s *Service) Load(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("store", s.store.Kind()).Msg("learning snapshot unreadable, starting empty")
		snap = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	if snap == nil {
		return nil
	}

	for sig, e := range snap.Patterns {
		e := e.Clone()
		s.patterns[sig] = &e
		if e.Tick > s.tick {
			s.tick = e.Tick
		}
	}
	for sig, l := range snap.Overrides {
		s.overrides[sig] = l
	}
	s.corrections = append(s.corrections, snap.Corrections...)
	s.failures = append(s.failures, snap.Failures...)
	if over := len(s.failures) - s.cfg.MaxFailures; over > 0 {
		s.failures = s.failures[over:]
	}
	s.counters.Requests = snap.Counters.Requests
	s.counters.Hits = snap.Counters.Hits
	s.counters.Misses = snap.Counters.Misses
	for k, v := range snap.Counters.Languages {
		s.counters.Languages[k] = v
	}
	for k, v := range snap.Counters.Methods {
		s.counters.Methods[k] = v
	}

	s.log.Info().Int("patterns", len(s.patterns)).Int("corrections", len(s.corrections)).
		Str("store", s.store.Kind()).Msg("learning snapshot loaded")
	return nil
}

// Snapshot deep copies the current state
func (s *Service) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &domain.Snapshot{
		Version:     domain.SnapshotVersion,
		SavedAt:     s.now(),
		Patterns:    make(map[string]domain.Entry, len(s.patterns)),
		Overrides:   make(map[string]string, len(s.overrides)),
		Corrections: append([]domain.Correction(nil), s.corrections...),
		Failures:    append([]domain.Failure(nil), s.failures...),
		Counters: domain.Counters{
			Requests:  s.counters.Requests,
			Hits:      s.counters.Hits,
			Misses:    s.counters.Misses,
			Languages: make(map[string]int64, len(s.counters.Languages)),
			Methods:   make(map[string]int64, len(s.counters.Methods)),
		},
	}
	for sig, e := range s.patterns {
		snap.Patterns[sig] = e.Clone()
	}
	for sig, l := range s.overrides {
		snap.Overrides[sig] = l
	}
	for k, v := range s.counters.Languages {
		snap.Counters.Languages[k] = v
	}
	for k, v := range s.counters.Methods {
		snap.Counters.Methods[k] = v
	}
	return snap
}

// Save writes a snapshot synchronously
func (s *Service) Save(ctx context.Context) error {
	snap := s.Snapshot()
	if err := s.store.Save(ctx, snap); err != nil {
		s.log.Error().Err(err).Str("store", s.store.Kind()).Msg("learning snapshot save failed")
		return err
	}
	s.sinceSave.Store(0)
	s.log.Debug().Int("patterns", len(snap.Patterns)).Str("store", s.store.Kind()).Msg("learning snapshot saved")
	return nil
}

// MaybeAutosave counts one served request and starts a background save every
// AutosaveEvery requests. Concurrent triggers share one write.
func (s *Service) MaybeAutosave() {
	if s.sinceSave.Add(1) < int64(s.cfg.AutosaveEvery) {
		return
	}

	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	if s.closed {
		return
	}
	s.sinceSave.Store(0)
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		_, _, _ = s.flight.Do("save", func() (any, error) {
			return nil, s.Save(context.Background())
		})
	}()
}

// Flush waits for background saves to finish
func (s *Service) Flush() { s.bg.Wait() }

// Close stops autosave, waits for in flight writes and saves once more
func (s *Service) Close(ctx context.Context) error {
	s.bgMu.Lock()
	s.closed = true
	s.bgMu.Unlock()

	s.bg.Wait()
	return s.Save(ctx)
}
