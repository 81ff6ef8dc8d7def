// Package translit converts romanized words to Indic scripts. Latin input is
// mapped to Devanagari with a greedy ITRANS style scheme; other Brahmic
// scripts are reached through the shared block layout.
package translit

import (
	"strings"
	"unicode"

	"codemix/internal/core/script"
)

const (
	virama   = '्'
	anusvara = 'ं'
	visarga  = 'ः'
	devLo    = 0x0900
	devHi    = 0x097F
)

type vowel struct {
	independent string
	matra       string
}

var consonants = map[string]string{
	"k": "क", "kh": "ख", "g": "ग", "gh": "घ",
	"c": "क", "ch": "च", "chh": "छ", "j": "ज", "jh": "झ",
	"t": "त", "th": "थ", "d": "द", "dh": "ध", "n": "न",
	"p": "प", "ph": "फ", "f": "फ़", "b": "ब", "bh": "भ", "m": "म",
	"y": "य", "r": "र", "l": "ल", "v": "व", "w": "व",
	"sh": "श", "shh": "ष", "s": "स", "h": "ह",
	"x": "क्ष", "gy": "ज्ञ", "z": "ज़", "q": "क़",
}

var vowels = map[string]vowel{
	"a":  {"अ", ""},
	"aa": {"आ", "ा"},
	"i":  {"इ", "ि"},
	"ii": {"ई", "ी"},
	"ee": {"ई", "ी"},
	"u":  {"उ", "ु"},
	"uu": {"ऊ", "ू"},
	"oo": {"ऊ", "ू"},
	"e":  {"ए", "े"},
	"ai": {"ऐ", "ै"},
	"o":  {"ओ", "ो"},
	"au": {"औ", "ौ"},
}

const maxKey = 3

// ToDevanagari transliterates romanized text. Consonant clusters get a
// virama, vowels after a consonant become matras, and a word final consonant
// keeps its inherent vowel. "M" and ".n" give anusvara, "H" visarga. Other
// letters are matched case-insensitively; runes outside a-z pass through.
func ToDevanagari(roman string) string {
	low := asciiLower(roman)
	var b strings.Builder
	b.Grow(len(roman) * 3)
	afterConsonant := false

	for i := 0; i < len(low); {
		switch {
		case roman[i] == 'M' || strings.HasPrefix(roman[i:], ".n"):
			b.WriteRune(anusvara)
			afterConsonant = false
			if roman[i] == '.' {
				i++
			}
			i++
			continue
		case roman[i] == 'H':
			b.WriteRune(visarga)
			afterConsonant = false
			i++
			continue
		}

		if low[i] < 'a' || low[i] > 'z' {
			afterConsonant = false
			j := i + 1
			for j < len(low) && (low[j] < 'a' || low[j] > 'z') && low[j] != '.' {
				j++
			}
			b.WriteString(roman[i:j])
			i = j
			continue
		}

		if key, ok := longest(low[i:], consonantKey); ok {
			if afterConsonant {
				b.WriteRune(virama)
			}
			b.WriteString(consonants[key])
			afterConsonant = true
			i += len(key)
			continue
		}
		if key, ok := longest(low[i:], vowelKey); ok {
			v := vowels[key]
			if afterConsonant {
				b.WriteString(v.matra)
			} else {
				b.WriteString(v.independent)
			}
			afterConsonant = false
			i += len(key)
			continue
		}
		b.WriteByte(low[i])
		afterConsonant = false
		i++
	}
	return b.String()
}

func asciiLower(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if c >= 'A' && c <= 'Z' {
			buf[i] = c + 'a' - 'A'
		}
	}
	return string(buf)
}

func consonantKey(k string) bool { _, ok := consonants[k]; return ok }
func vowelKey(k string) bool     { _, ok := vowels[k]; return ok }

func longest(s string, has func(string) bool) (string, bool) {
	n := maxKey
	if len(s) < n {
		n = len(s)
	}
	for ; n > 0; n-- {
		if has(s[:n]) {
			return s[:n], true
		}
	}
	return "", false
}

// FromDevanagari maps Devanagari text to another Indic script by block
// offset. ok is false when any mapped code point is not assigned in the
// target script.
func FromDevanagari(dev string, target script.Code) (string, bool) {
	if target == script.Devanagari {
		return dev, true
	}
	lo, ok := script.BlockStart(target)
	if !ok {
		return "", false
	}
	table := script.Table(target)
	var b strings.Builder
	b.Grow(len(dev))
	for _, r := range dev {
		if r < devLo || r > devHi {
			b.WriteRune(r)
			continue
		}
		m := r - devLo + lo
		if !unicode.Is(table, m) {
			return "", false
		}
		b.WriteRune(m)
	}
	return b.String(), true
}

// ToScript transliterates a romanized word into target. ok is false for words
// without any a-z letter, for unsupported targets, and when the target
// script has no equivalent for some produced sign.
func ToScript(roman string, target script.Code) (string, bool) {
	if !hasASCIILetter(roman) {
		return "", false
	}
	return FromDevanagari(ToDevanagari(roman), target)
}

func hasASCIILetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c >= 'a' && c <= 'z' {
			return true
		}
	}
	return false
}
