// Package script classifies runes by writing system and computes the script
// composition of a text. Percentages are taken over scriptable runes only
// (Indic letters and signs, Latin letters, letters of any other script).
package script

import (
	"sort"
	"unicode"
)

// Code is an ISO 15924 script code
type Code string

// Script codes used across the engine
const (
	Devanagari Code = "Deva"
	Bengali    Code = "Beng"
	Gurmukhi   Code = "Guru"
	Gujarati   Code = "Gujr"
	Oriya      Code = "Orya"
	Tamil      Code = "Taml"
	Telugu     Code = "Telu"
	Kannada    Code = "Knda"
	Malayalam  Code = "Mlym"
	Latin      Code = "Latn"

	// Other is the bucket for letters of non Indic, non Latin scripts
	Other Code = "other"
	// Undetermined is reported when no scriptable rune exists
	Undetermined Code = "undetermined"
)

// DefaultCandidateFloor is the percent both Indic and Latin must exceed
// before a text is a code mixing candidate
const DefaultCandidateFloor = 10.0

// block is a Unicode range owned by one Indic script
type block struct {
	code  Code
	table *unicode.RangeTable
	lo    rune
}

// indicBlocks is ordered by code point, which is also the Devanagari offset order
var indicBlocks = []block{
	{Devanagari, unicode.Devanagari, 0x0900},
	{Bengali, unicode.Bengali, 0x0980},
	{Gurmukhi, unicode.Gurmukhi, 0x0A00},
	{Gujarati, unicode.Gujarati, 0x0A80},
	{Oriya, unicode.Oriya, 0x0B00},
	{Tamil, unicode.Tamil, 0x0B80},
	{Telugu, unicode.Telugu, 0x0C00},
	{Kannada, unicode.Kannada, 0x0C80},
	{Malayalam, unicode.Malayalam, 0x0D00},
}

// IndicCodes lists supported Indic scripts in ascending code order
func IndicCodes() []Code {
	out := make([]Code, 0, len(indicBlocks))
	for _, b := range indicBlocks {
		out = append(out, b.code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsIndic reports whether c is one of the supported Indic scripts
func IsIndic(c Code) bool {
	for _, b := range indicBlocks {
		if b.code == c {
			return true
		}
	}
	return false
}

// BlockStart returns the first code point of an Indic script block
func BlockStart(c Code) (rune, bool) {
	for _, b := range indicBlocks {
		if b.code == c {
			return b.lo, true
		}
	}
	return 0, false
}

// Table returns the unicode range table for an Indic script
func Table(c Code) *unicode.RangeTable {
	for _, b := range indicBlocks {
		if b.code == c {
			return b.table
		}
	}
	if c == Latin {
		return unicode.Latin
	}
	return nil
}

// Kind is the coarse class of a rune
type Kind uint8

const (
	// KindOther covers whitespace, controls, emoji and letters of other scripts
	KindOther Kind = iota
	// KindIndic is a letter or sign inside an Indic block
	KindIndic
	// KindLatin is a Latin letter
	KindLatin
	// KindDigit is any decimal digit, including Indic digits
	KindDigit
	// KindPunct is punctuation or a symbol
	KindPunct
)

// Class is the classification of one rune
type Class struct {
	Kind   Kind
	Script Code // set for KindIndic and KindLatin, and Other for foreign letters
}

// Scriptable reports whether the rune counts toward percentages
func (c Class) Scriptable() bool {
	return c.Kind == KindIndic || c.Kind == KindLatin || (c.Kind == KindOther && c.Script == Other)
}

// Classify places r in exactly one class. Digits and punctuation win over
// block membership so "०" and "।" never count as Devanagari letters.
func Classify(r rune) Class {
	switch {
	case unicode.IsDigit(r):
		return Class{Kind: KindDigit}
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return Class{Kind: KindPunct}
	}
	for _, b := range indicBlocks {
		if unicode.Is(b.table, r) {
			return Class{Kind: KindIndic, Script: b.code}
		}
	}
	if unicode.Is(unicode.Latin, r) && unicode.IsLetter(r) {
		return Class{Kind: KindLatin, Script: Latin}
	}
	if unicode.IsLetter(r) {
		return Class{Kind: KindOther, Script: Other}
	}
	return Class{Kind: KindOther}
}
