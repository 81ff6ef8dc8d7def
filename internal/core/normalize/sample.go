package normalize

import (
	"strings"
	"unicode/utf8"
)

// Bucket is a coarse text length class
type Bucket string

const (
	// BucketShort is text under 20 runes
	BucketShort Bucket = "short"
	// BucketMedium is text under 100 runes
	BucketMedium Bucket = "medium"
	// BucketLong is everything else
	BucketLong Bucket = "long"
)

// BucketOf maps a rune length to its bucket
func BucketOf(runeLen int) Bucket {
	switch {
	case runeLen < 20:
		return BucketShort
	case runeLen < 100:
		return BucketMedium
	default:
		return BucketLong
	}
}

// Sample is the per call view of one input text
type Sample struct {
	Raw       string
	Text      string // normalized
	Tokens    []Token
	RuneLen   int
	WordCount int
	Bucket    Bucket
}

// Empty reports whether normalization left nothing to analyze
func (s Sample) Empty() bool { return s.Text == "" }

// Folded returns the folded token forms in order
func (s Sample) Folded() []string {
	out := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		out[i] = t.Fold
	}
	return out
}

// Sample normalizes raw and derives tokens, length and bucket
func (n *Normalizer) Sample(raw string) Sample {
	txt := n.Normalize(raw)
	rl := utf8.RuneCountInString(txt)
	return Sample{
		Raw:       raw,
		Text:      txt,
		Tokens:    Tokenize(txt),
		RuneLen:   rl,
		WordCount: len(strings.Fields(txt)),
		Bucket:    BucketOf(rl),
	}
}
