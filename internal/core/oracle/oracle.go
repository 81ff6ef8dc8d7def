// Package oracle is the boundary to broad coverage language identification
// models. The engine only ever talks to the narrow Oracle interface and
// treats every failure as "no opinion".
package oracle

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"codemix/internal/core/script"
	perr "codemix/internal/platform/errors"
)

// Guess is one ranked language hypothesis
type Guess struct {
	Language   string      `json:"language" msgpack:"language"`
	Script     script.Code `json:"script,omitempty" msgpack:"script,omitempty"`
	Confidence float64     `json:"confidence" msgpack:"confidence"`
}

// Oracle identifies the language of a text. Implementations may return
// guesses in any order; Call ranks them.
type Oracle interface {
	Identify(ctx context.Context, text string) ([]Guess, error)
}

// Func adapts a plain function
type Func func(ctx context.Context, text string) ([]Guess, error)

// Identify implements Oracle
func (f Func) Identify(ctx context.Context, text string) ([]Guess, error) { return f(ctx, text) }

// None is an oracle that is never available
type None struct{}

// Identify implements Oracle
func (None) Identify(context.Context, string) ([]Guess, error) { return nil, ErrUnavailable }

var (
	// ErrUnavailable is returned when no oracle is configured or it failed
	ErrUnavailable = perr.New(perr.ErrorCodeUnavailable, "oracle unavailable")
	// ErrEmpty is returned when the oracle produced no usable guess
	ErrEmpty = perr.New(perr.ErrorCodeUnavailable, "oracle returned no guesses")
)

type outcome struct {
	guesses []Guess
	err     error
}

// Call runs o under timeout and returns normalized, ranked guesses. Panics,
// errors, timeouts and empty results all come back as an Unavailable error;
// Call never retries. A non positive timeout means only ctx bounds the call.
func Call(ctx context.Context, o Oracle, text string, timeout time.Duration) ([]Guess, error) {
	if o == nil {
		return nil, ErrUnavailable
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: perr.Newf(perr.ErrorCodePanic, "oracle panic: %v", r)}
			}
		}()
		g, err := o.Identify(ctx, text)
		done <- outcome{guesses: g, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "oracle timed out")
	case out := <-done:
		if out.err != nil {
			if perr.IsCode(out.err, perr.ErrorCodeUnavailable) {
				return nil, out.err
			}
			return nil, perr.Wrap(out.err, perr.ErrorCodeUnavailable, "oracle failed")
		}
		ranked := Rank(out.guesses)
		if len(ranked) == 0 {
			return nil, ErrEmpty
		}
		return ranked, nil
	}
}

// Rank normalizes codes, clamps confidences, drops unknown languages, keeps
// the best guess per language and sorts by confidence desc then language asc
func Rank(in []Guess) []Guess {
	best := map[string]Guess{}
	for _, g := range in {
		lang, sc := ParseLabel(g.Language)
		if lang == Unknown {
			continue
		}
		if g.Script != "" {
			sc = g.Script
		}
		if sc == "" {
			sc, _ = DefaultScript(lang)
		}
		c := g.Confidence
		switch {
		case math.IsNaN(c), c < 0:
			c = 0
		case c > 1:
			c = 1
		}
		if cur, ok := best[lang]; ok && cur.Confidence >= c {
			continue
		}
		best[lang] = Guess{Language: lang, Script: sc, Confidence: c}
	}

	out := make([]Guess, 0, len(best))
	for _, g := range best {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// Top returns the first guess, or a zero guess when there is none
func Top(g []Guess) Guess {
	if len(g) == 0 {
		return Guess{}
	}
	return g[0]
}

// Confidence returns the confidence assigned to lang, zero when absent
func Confidence(g []Guess, lang string) float64 {
	for _, x := range g {
		if x.Language == lang {
			return x.Confidence
		}
	}
	return 0
}

// String formats a guess for logs
func (g Guess) String() string {
	return fmt.Sprintf("%s/%s:%.3f", g.Language, g.Script, g.Confidence)
}
