package oracle

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DefaultLinguaLanguages are the languages the lingua adapter loads models for
var DefaultLinguaLanguages = []lingua.Language{
	lingua.English,
	lingua.Hindi,
	lingua.Marathi,
	lingua.Bengali,
	lingua.Tamil,
	lingua.Telugu,
	lingua.Punjabi,
	lingua.Gujarati,
	lingua.Urdu,
}

// Lingua wraps a lingua-go detector
type Lingua struct {
	det   lingua.LanguageDetector
	top   int
	latin int
}

// NewLingua builds a detector restricted to langs, DefaultLinguaLanguages
// when empty. Building loads models lazily; the first call is slow.
func NewLingua(langs ...lingua.Language) *Lingua {
	if len(langs) == 0 {
		langs = DefaultLinguaLanguages
	}
	det := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	l := &Lingua{det: det, top: 5}
	latin := map[lingua.Language]bool{}
	for _, x := range lingua.AllLanguagesWithLatinScript() {
		latin[x] = true
	}
	for _, x := range langs {
		if latin[x] {
			l.latin++
			delete(latin, x)
		}
	}
	return l
}

// Identify implements Oracle
func (l *Lingua) Identify(ctx context.Context, text string) ([]Guess, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.latin < 2 && latinDominant(text) {
		return nil, ErrNoContrast
	}
	vals := l.det.ComputeLanguageConfidenceValues(text)
	out := make([]Guess, 0, l.top)
	for _, v := range vals {
		if len(out) == l.top {
			break
		}
		if v.Value() <= 0 {
			continue
		}
		out = append(out, Guess{
			Language:   strings.ToLower(v.Language().IsoCode639_1().String()),
			Confidence: v.Value(),
		})
	}
	return out, nil
}
