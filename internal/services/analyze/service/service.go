// Package service orchestrates one analysis: normalization, script makeup,
// dictionary matching, code mixing, the oracle, fusion and the learning cache.
package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"codemix/internal/core/codemix"
	"codemix/internal/core/dictionary"
	"codemix/internal/core/fusion"
	"codemix/internal/core/matcher"
	"codemix/internal/core/normalize"
	"codemix/internal/core/oracle"
	"codemix/internal/core/script"
	perr "codemix/internal/platform/errors"
	"codemix/internal/platform/logger"
	ptime "codemix/internal/platform/time"
	"codemix/internal/services/analyze/domain"
	ldomain "codemix/internal/services/learning/domain"
)

// Config controls the oracle and the event pipeline
type Config struct {
	OracleName    string
	OracleTimeout time.Duration
	Tuning        Tuning

	EventBuffer int
	EventBatch  int
	EventFlush  time.Duration
}

// DefaultConfig returns the production settings
func DefaultConfig() Config {
	return Config{
		OracleName:    oracle.KindWhatlang,
		OracleTimeout: 2 * time.Second,
		Tuning:        DefaultTuning(),
		EventBuffer:   4096,
		EventBatch:    500,
		EventFlush:    2 * time.Second,
	}
}

// Learning is the slice of the learning module the engine drives
type Learning interface {
	ldomain.CachePort
	ldomain.CorrectionPort
	ldomain.StatsPort
	ldomain.LifecyclePort
}

// Deps are the collaborators of the engine. Registry defaults to the
// embedded dictionaries, Oracle to none, Sink to discarding events.
type Deps struct {
	Registry *dictionary.Registry
	Oracle   oracle.Oracle
	Learning Learning
	Sink     domain.EventSink
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces the wall clock used for timings and events
func WithClock(c ptime.Clock) Option { return func(s *Service) { s.now = c.OrSystem() } }

// Service is safe for concurrent use
type Service struct {
	cfg     Config
	norm    *normalize.Normalizer
	scripts *script.Analyzer
	reg     *dictionary.Registry
	agg     *codemix.Aggregator
	fuse    *fusion.Engine
	oracle  oracle.Oracle
	learn   Learning
	events  *publisher
	log     *logger.Logger
	now     ptime.Clock
}

var (
	_ domain.AnalyzerPort   = (*Service)(nil)
	_ domain.FeedbackPort   = (*Service)(nil)
	_ domain.StatsPort      = (*Service)(nil)
	_ domain.DictionaryPort = (*Service)(nil)
)

// New wires the engine. It fails only on an invalid tuning.
func New(d Deps, cfg Config, opts ...Option) (*Service, error) {
	if d.Learning == nil {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "analyze: learning is required")
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, err
	}
	curve, err := codemix.NewStepCurve(cfg.Tuning.Codemix.Curve...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "analyze: curve")
	}

	if d.Registry == nil {
		set, err := dictionary.Defaults()
		if err != nil {
			return nil, err
		}
		d.Registry = dictionary.NewRegistry(set)
	}
	if d.Oracle == nil {
		d.Oracle = oracle.None{}
		cfg.OracleName = oracle.KindNone
	}

	s := &Service{
		cfg:     cfg,
		norm:    normalize.New(),
		scripts: script.NewAnalyzer(script.WithCandidateFloor(cfg.Tuning.CandidateFloor)),
		reg:     d.Registry,
		agg:     codemix.New(codemix.WithCurve(curve), codemix.WithWeights(cfg.Tuning.Codemix.Weights)),
		fuse:    fusion.New(cfg.Tuning.Fusion),
		oracle:  d.Oracle,
		learn:   d.Learning,
		log:     logger.Named("analyze"),
		now:     ptime.System,
	}
	for _, o := range opts {
		o(s)
	}
	if d.Sink != nil {
		s.events = newPublisher(d.Sink, cfg.EventBuffer, cfg.EventBatch, cfg.EventFlush)
	}
	return s, nil
}

// Analyze returns the decision for text
func (s *Service) Analyze(ctx context.Context, text string) fusion.Decision {
	return s.AnalyzeDetailed(ctx, text).Decision
}

// AnalyzeDetailed returns the decision with its signature, cache outcome and
// timings. It never fails: bad input and oracle trouble degrade the decision.
func (s *Service) AnalyzeDetailed(ctx context.Context, text string) domain.Result {
	start := s.now()
	set := s.reg.Current()
	sample := s.norm.Sample(text)
	comp := s.scripts.Analyze(sample.Text)

	res := domain.Result{Bucket: sample.Bucket, DictionaryVersion: set.Version()}
	if sample.Empty() || comp.Scriptable == 0 {
		res.Decision = fusion.Invalid(comp)
		res.Timings.Total = s.now().Sub(start)
		return res
	}

	sig := Signature(sample, comp)
	res.Signature = sig
	match := matcher.MatchSet(set, sample)

	switch cached, hit := s.learn.Lookup(sig); {
	case hit:
		res.Decision = fusion.Refresh(cached, comp, match)
		res.CacheHit = true
	default:
		in := fusion.Input{
			Composition: comp,
			Match:       match,
			Mix:         s.agg.Aggregate(sample, comp, match),
		}
		if lang, ok := s.learn.Override(sig); ok {
			res.Decision = s.fuse.Override(in, lang)
			s.learn.Served(res.Decision)
			break
		}
		ostart := s.now()
		in.Guesses, in.OracleErr = oracle.Call(ctx, s.oracle, sample.Text, s.cfg.OracleTimeout)
		res.Timings.Oracle = s.now().Sub(ostart)
		if in.OracleErr != nil {
			res.OracleError = in.OracleErr.Error()
			s.logOracle(in.OracleErr, sig)
		}
		res.Decision = s.fuse.Decide(in)
		s.learn.Record(sig, sample.Text, res.Decision)
	}

	s.learn.MaybeAutosave()
	res.Timings.Total = s.now().Sub(start)
	s.events.publish(event(res, sample, start))

	s.log.Debug().Str("signature", sig).Str("lang", res.Language).Str("method", res.Method).
		Float64("confidence", res.Confidence).Bool("cache_hit", res.CacheHit).Dur("dur", res.Timings.Total).
		Msg("analyzed")
	return res
}

// logOracle keeps the routine cases quiet: no oracle, no opinion, or no
// Latin languages to weigh romanized text against
func (s *Service) logOracle(err error, sig string) {
	switch {
	case errors.Is(err, oracle.ErrUnavailable):
		s.log.Debug().Str("signature", sig).Msg("oracle disabled, heuristic fallback")
		return
	case errors.Is(err, oracle.ErrEmpty), errors.Is(err, oracle.ErrNoContrast):
		s.log.Debug().Err(err).Str("signature", sig).Msg("oracle abstained, heuristic fallback")
		return
	}
	s.log.Warn().Err(err).Str("signature", sig).Msg("oracle failed, heuristic fallback")
}

func event(r domain.Result, sample normalize.Sample, at time.Time) domain.Event {
	return domain.Event{
		At:                at,
		Signature:         r.Signature,
		Language:          r.Language,
		Languages:         append([]string(nil), r.Languages...),
		Script:            string(r.Script),
		Method:            r.Method,
		Confidence:        r.Confidence,
		IsCodeMixed:       r.IsCodeMixed,
		CodeMixingScore:   r.CodeMixingScore,
		NeedsConversion:   r.NeedsConversion,
		CacheHit:          r.CacheHit,
		Bucket:            string(r.Bucket),
		RuneLen:           sample.RuneLen,
		DictionaryVersion: r.DictionaryVersion,
		Duration:          r.Timings.Total,
	}
}

// SubmitCorrection stores a user label. A missing signature is derived from
// the text the same way Analyze does.
func (s *Service) SubmitCorrection(ctx context.Context, in domain.CorrectionInput) (domain.Receipt, error) {
	if strings.TrimSpace(in.Signature) == "" && strings.TrimSpace(in.Text) != "" {
		sample := s.norm.Sample(in.Text)
		in.Signature = Signature(sample, s.scripts.Analyze(sample.Text))
	}
	return s.learn.Correct(ctx, in)
}

// Suggestions ranks the languages users proposed for text
func (s *Service) Suggestions(text string) []ldomain.Suggestion {
	sample := s.norm.Sample(text)
	return s.learn.Suggestions(Signature(sample, s.scripts.Analyze(sample.Text)))
}

// Statistics reports the cache read model and engine facts
func (s *Service) Statistics(_ context.Context) domain.Statistics {
	set := s.reg.Current()
	return domain.Statistics{
		Stats:             s.learn.Stats(),
		DictionaryVersion: set.Version(),
		Dictionaries:      set.Codes(),
		Oracle:            s.cfg.OracleName,
		EventsDropped:     s.events.droppedCount(),
	}
}

// LoadDictionary installs a JSON dictionary document under code
func (s *Service) LoadDictionary(code string, r io.Reader) error {
	return s.LoadDictionaryAs(code, r, dictionary.FormatJSON)
}

// LoadDictionaryAs installs a dictionary document in format f
func (s *Service) LoadDictionaryAs(code string, r io.Reader, f dictionary.Format) error {
	d, err := s.reg.Load(code, r, f)
	if err != nil {
		return err
	}
	s.log.Info().Str("lang", d.ISOCode).Int("entries", d.Len()).Str("version", s.reg.Current().Version()).
		Msg("dictionary loaded")
	return nil
}

// ReloadDictionary swaps dictionaries from a file or directory
func (s *Service) ReloadDictionary(path string) error {
	set, err := s.reg.Reload(path)
	if err != nil {
		return err
	}
	s.log.Info().Str("path", path).Strs("languages", set.Codes()).Str("version", set.Version()).
		Msg("dictionaries reloaded")
	return nil
}

// Close drains pending events and flushes the cache
func (s *Service) Close(ctx context.Context) error {
	return errors.Join(s.events.close(ctx), s.learn.Close(ctx))
}
