// Package normalize prepares raw social media text for script analysis and
// romanized matching.
// Pipeline order
// 1 sanitize controls and drop invalid UTF-8
// 2 Unicode NFKC (ligatures, compatibility forms)
// 3 remove format chars (ZWJ, ZWNJ, BOM)
// 4 width fold fullwidth to ASCII
// 5 squash elongated runs ("bahuuuut" -> "bahuut")
// 6 collapse whitespace to single spaces and trim
//
// Combining marks are kept: Indic vowel signs are Mn/Mc and carry meaning.
// Case is kept too; tokens expose a folded form for lookups.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxRepeat is how many identical consecutive runes survive squashing
const MaxRepeat = 2

// Normalizer is concurrency safe, transformer chains are pooled
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// cases.Caser keeps state between calls so each goroutine takes its own
var foldPool = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transform only fails on malformed input which Sanitize already dropped
		ns = s
	}

	ns = squashRuns(ns, MaxRepeat)
	return collapseSpaces(ns)
}

// Fold returns the Unicode case folded form of s
func Fold(s string) string {
	if s == "" {
		return s
	}
	c := foldPool.Get().(*cases.Caser)
	out := c.String(s)
	c.Reset()
	foldPool.Put(c)
	return out
}

// squashRuns keeps at most max identical consecutive letters, digits are left alone
func squashRuns(s string, max int) string {
	if s == "" || max < 1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev && unicode.IsLetter(r) {
			count++
			if count <= max {
				b.WriteRune(r)
			}
			continue
		}
		prev = r
		count = 1
		b.WriteRune(r)
	}
	return b.String()
}

// collapseSpaces converts every whitespace run to one ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
