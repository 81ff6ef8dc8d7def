// Package service implements the adaptive pattern cache: promoted decisions
// keyed by pattern signature, user corrections, failure records and request
// statistics, persisted through a pluggable snapshot store.
package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"codemix/internal/core/fusion"
	"codemix/internal/core/oracle"
	perr "codemix/internal/platform/errors"
	"codemix/internal/platform/logger"
	ptime "codemix/internal/platform/time"
	"codemix/internal/services/learning/domain"
	"codemix/internal/services/learning/repo"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Config tunes promotion, retention and autosave
type Config struct {
	PromoteUses       int     `toml:"promote_uses"`
	PromoteConfidence float64 `toml:"promote_confidence"`
	FailureFloor      float64 `toml:"failure_floor"`
	MaxFailures       int     `toml:"max_failures"`
	MaxPatterns       int     `toml:"max_patterns"`
	TrimTo            int     `toml:"trim_to"`
	AutosaveEvery     int     `toml:"autosave_every"`
	ExampleRunes      int     `toml:"example_runes"`
}

// DefaultConfig returns the production settings
func DefaultConfig() Config {
	return Config{
		PromoteUses:       3,
		PromoteConfidence: 0.70,
		FailureFloor:      0.5,
		MaxFailures:       1000,
		MaxPatterns:       12000,
		TrimTo:            10000,
		AutosaveEvery:     100,
		ExampleRunes:      200,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PromoteUses <= 0 {
		c.PromoteUses = d.PromoteUses
	}
	if c.PromoteConfidence <= 0 || c.PromoteConfidence > 1 {
		c.PromoteConfidence = d.PromoteConfidence
	}
	if c.FailureFloor <= 0 || c.FailureFloor > 1 {
		c.FailureFloor = d.FailureFloor
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = d.MaxFailures
	}
	if c.MaxPatterns <= 0 {
		c.MaxPatterns = d.MaxPatterns
	}
	if c.TrimTo <= 0 || c.TrimTo > c.MaxPatterns {
		c.TrimTo = c.MaxPatterns * 5 / 6
	}
	if c.AutosaveEvery <= 0 {
		c.AutosaveEvery = d.AutosaveEvery
	}
	if c.ExampleRunes <= 0 {
		c.ExampleRunes = d.ExampleRunes
	}
	return c
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces the wall clock
func WithClock(c ptime.Clock) Option { return func(s *Service) { s.now = c.OrSystem() } }

// WithIDs replaces uuid generation
func WithIDs(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Service is the in process cache. All state sits behind one RWMutex;
// persistence encodes a deep copy outside the lock.
type Service struct {
	cfg   Config
	store repo.Storage
	log   *logger.Logger
	now   ptime.Clock
	newID func() string

	mu          sync.RWMutex
	patterns    map[string]*domain.Entry
	overrides   map[string]string
	corrections []domain.Correction
	failures    []domain.Failure
	counters    domain.Counters
	tick        uint64

	sinceSave atomic.Int64
	flight    singleflight.Group

	// bgMu orders autosave starts against Close so no save begins after
	// Close has waited
	bgMu   sync.Mutex
	bg     sync.WaitGroup
	closed bool
}

var (
	_ domain.CachePort      = (*Service)(nil)
	_ domain.CorrectionPort = (*Service)(nil)
	_ domain.StatsPort      = (*Service)(nil)
	_ domain.LifecyclePort  = (*Service)(nil)
)

// New constructs an empty cache over store; call Load to restore state
func New(store repo.Storage, cfg Config, opts ...Option) *Service {
	if store == nil {
		store = repo.NewMemory()
	}
	s := &Service{
		cfg:   cfg.withDefaults(),
		store: store,
		log:   logger.Named("learning"),
		now:   ptime.System,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	s.reset()
	return s
}

// Config returns the effective configuration
func (s *Service) Config() Config { return s.cfg }

func (s *Service) reset() {
	s.patterns = map[string]*domain.Entry{}
	s.overrides = map[string]string{}
	s.corrections = nil
	s.failures = nil
	s.counters = domain.Counters{Languages: map[string]int64{}, Methods: map[string]int64{}}
	s.tick = 0
}

// Lookup returns the decision of a promoted entry and counts the request
func (s *Service) Lookup(sig string) (fusion.Decision, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters.Requests++
	e, ok := s.patterns[sig]
	if !ok || !e.Promoted {
		s.counters.Misses++
		return fusion.Decision{}, false
	}
	s.counters.Hits++
	s.tick++
	e.UseCount++
	e.LastUsed = s.now()
	e.Tick = s.tick
	s.countDecision(e.Decision)
	return e.Decision.Clone(), true
}

// Record folds a freshly computed decision into the entry for sig
func (s *Service) Record(sig, text string, d fusion.Decision) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.patterns[sig]
	if !ok {
		e = &domain.Entry{FirstSeen: now, Example: truncate(text, s.cfg.ExampleRunes)}
		s.patterns[sig] = e
	}
	s.tick++
	e.UseCount++
	e.Confidence = round4(e.Confidence + (d.Confidence-e.Confidence)/float64(e.UseCount))
	e.Decision = d.Clone()
	e.LastUsed = now
	e.Tick = s.tick
	if !e.Promoted && e.UseCount >= s.cfg.PromoteUses && e.Confidence >= s.cfg.PromoteConfidence {
		e.Promoted = true
		s.log.Debug().Str("signature", sig).Str("lang", d.Language).Int("uses", e.UseCount).
			Float64("confidence", e.Confidence).Msg("pattern promoted")
	}
	s.countDecision(d)

	if d.Confidence < s.cfg.FailureFloor {
		s.appendFailure(domain.Failure{
			Signature:        sig,
			Reason:           domain.ReasonLowConfidence,
			DetectedLanguage: d.Language,
			Confidence:       d.Confidence,
			Method:           d.Method,
			Timestamp:        now,
		})
	}
	if len(s.patterns) > s.cfg.MaxPatterns {
		s.evict()
	}
}

// Override returns the corrected language for sig, if any
func (s *Service) Override(sig string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.overrides[sig]
	return l, ok
}

// Served counts a decision that was answered without Record, such as a
// user override
func (s *Service) Served(d fusion.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countDecision(d)
}

// Entry returns a copy of the entry for sig
func (s *Service) Entry(sig string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.patterns[sig]
	if !ok {
		return domain.Entry{}, false
	}
	return e.Clone(), true
}

// Len is the number of cached patterns
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}

// Correct stores a user correction, demotes the entry and pins the corrected
// language for the signature
func (s *Service) Correct(_ context.Context, in domain.CorrectionInput) (domain.Receipt, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return domain.Receipt{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "text is required"), "text")
	}
	if strings.TrimSpace(in.Signature) == "" {
		return domain.Receipt{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "signature is required"), "signature")
	}
	lang := oracle.NormalizeCode(in.CorrectLanguage)
	if lang == oracle.Unknown {
		return domain.Receipt{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "unknown language %q", in.CorrectLanguage), "correct_language")
	}

	now := s.now()
	c := domain.Correction{
		ID:              s.newID(),
		Text:            truncate(text, s.cfg.ExampleRunes),
		Signature:       in.Signature,
		CorrectLanguage: lang,
		AnnotatorID:     strings.TrimSpace(in.AnnotatorID),
		Comment:         strings.TrimSpace(in.Comment),
		Timestamp:       now,
	}
	if in.Detected != "" {
		c.Detected = oracle.NormalizeCode(in.Detected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	demoted := false
	if e, ok := s.patterns[in.Signature]; ok {
		sys := e.Decision.Clone()
		c.SystemDecision = &sys
		if c.Detected == "" {
			c.Detected = sys.Language
		}
		demoted = e.Promoted
		if e.Promoted && sys.Language != lang {
			s.appendFailure(domain.Failure{
				Signature:        in.Signature,
				Reason:           domain.ReasonContradictsPromoted,
				DetectedLanguage: sys.Language,
				ExpectedLanguage: lang,
				Confidence:       sys.Confidence,
				Method:           sys.Method,
				Timestamp:        now,
			})
		}
		e.UseCount = 0
		e.Confidence = 0
		e.Promoted = false
	}
	s.overrides[in.Signature] = lang
	s.corrections = append(s.corrections, c)

	s.log.Info().Str("signature", in.Signature).Str("lang", lang).Str("detected", c.Detected).
		Bool("demoted", demoted).Msg("correction stored")

	return domain.Receipt{
		ID:        c.ID,
		Signature: in.Signature,
		Language:  lang,
		Demoted:   demoted,
		Timestamp: now,
	}, nil
}

// Suggestions ranks the languages users proposed for sig
func (s *Service) Suggestions(sig string) []domain.Suggestion {
	s.mu.RLock()
	counts := map[string]int{}
	for _, c := range s.corrections {
		if c.Signature == sig {
			counts[c.CorrectLanguage]++
		}
	}
	s.mu.RUnlock()

	out := make([]domain.Suggestion, 0, len(counts))
	for l, n := range counts {
		out = append(out, domain.Suggestion{Language: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// Failures returns a copy of the retained failure records, oldest first
func (s *Service) Failures() []domain.Failure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Failure(nil), s.failures...)
}

// countDecision updates language and method counters, caller holds the lock
func (s *Service) countDecision(d fusion.Decision) {
	s.counters.Languages[d.Language]++
	s.counters.Methods[d.Method]++
}

// appendFailure keeps the newest MaxFailures records, caller holds the lock
func (s *Service) appendFailure(f domain.Failure) {
	f.ID = s.newID()
	s.failures = append(s.failures, f)
	if over := len(s.failures) - s.cfg.MaxFailures; over > 0 {
		s.failures = append([]domain.Failure(nil), s.failures[over:]...)
	}
}

// evict drops the least recently used entries down to TrimTo, ties by
// signature, caller holds the lock
func (s *Service) evict() {
	type aged struct {
		sig  string
		tick uint64
	}
	all := make([]aged, 0, len(s.patterns))
	for sig, e := range s.patterns {
		all = append(all, aged{sig, e.Tick})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].tick != all[j].tick {
			return all[i].tick < all[j].tick
		}
		return all[i].sig < all[j].sig
	})
	drop := len(all) - s.cfg.TrimTo
	for _, a := range all[:drop] {
		delete(s.patterns, a.sig)
	}
	s.log.Info().Int("evicted", drop).Int("kept", len(s.patterns)).Msg("pattern cache trimmed")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
