package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a word span over normalized text
type Token struct {
	Text  string // as it appears in the normalized text
	Fold  string // case folded, used for dictionary keys
	Start int    // byte offset, inclusive
	End   int    // byte offset, exclusive
}

// HasDigit reports whether the token contains any decimal digit
func (t Token) HasDigit() bool {
	return strings.IndexFunc(t.Text, unicode.IsDigit) >= 0
}

// IsAllCaps reports acronyms like "OK" or "USA", at least two letters all upper
func (t Token) IsAllCaps() bool {
	letters := 0
	for _, r := range t.Text {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// IsASCII reports whether the token is plain ASCII
func (t Token) IsASCII() bool {
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Tokenize splits normalized text on whitespace and punctuation.
// Letters, combining marks and digits form words; an apostrophe between two
// letters stays inside the word so contractions survive.
func Tokenize(s string) []Token {
	if s == "" {
		return nil
	}
	var out []Token
	start := -1
	prevLetter := false

	flush := func(end int) {
		if start >= 0 && end > start {
			txt := s[start:end]
			out = append(out, Token{Text: txt, Fold: Fold(txt), Start: start, End: end})
		}
		start = -1
	}

	for i, r := range s {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
			prevLetter = unicode.IsLetter(r) || unicode.Is(unicode.M, r)
		case isApostrophe(r) && start >= 0 && prevLetter && nextIsLetter(s, i+utf8.RuneLen(r)):
			prevLetter = false
		default:
			flush(i)
			prevLetter = false
		}
	}
	flush(len(s))
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.M, r)
}

func isApostrophe(r rune) bool { return r == '\'' || r == '’' }

func nextIsLetter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r)
}
