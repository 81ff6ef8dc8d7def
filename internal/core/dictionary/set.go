package dictionary

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Hit is one dictionary match for a romanized token
type Hit struct {
	ISOCode  string
	Native   string
	Category string
}

// Set is an immutable snapshot of every loaded dictionary. Readers hold a
// *Set for the duration of a call, so a concurrent reload never mixes
// versions inside one analysis.
type Set struct {
	version  string
	dicts    map[string]*Dictionary
	codes    []string
	index    map[string][]Hit
	borrowed map[string]struct{}
	english  map[string]struct{}
}

// NewSet builds a snapshot; a later dictionary replaces an earlier one with
// the same ISO code
func NewSet(dicts ...*Dictionary) *Set {
	s := &Set{dicts: make(map[string]*Dictionary, len(dicts))}
	for _, d := range dicts {
		if d != nil {
			s.dicts[d.ISOCode] = d
		}
	}
	s.build()
	return s
}

// With returns a copy of s where d replaces any dictionary of the same code
func (s *Set) With(d *Dictionary) *Set {
	all := make([]*Dictionary, 0, len(s.dicts)+1)
	for _, c := range s.codes {
		all = append(all, s.dicts[c])
	}
	return NewSet(append(all, d)...)
}

func (s *Set) build() {
	s.codes = make([]string, 0, len(s.dicts))
	for c := range s.dicts {
		s.codes = append(s.codes, c)
	}
	sort.Strings(s.codes)

	s.index = map[string][]Hit{}
	s.borrowed = map[string]struct{}{}
	h := sha256.New()
	for _, c := range s.codes {
		d := s.dicts[c]
		h.Write([]byte(c + "|" + string(d.Script) + "|" + d.Language + "\n"))
		for _, k := range d.Keys() {
			e := d.entries[k]
			h.Write([]byte(k + "=" + e.Native + "@" + e.Category + "\n"))
			s.index[k] = append(s.index[k], Hit{ISOCode: c, Native: e.Native, Category: e.Category})
			if e.Borrowed() {
				s.borrowed[k] = struct{}{}
			}
		}
	}
	s.version = hex.EncodeToString(h.Sum(nil))[:12]

	s.english = make(map[string]struct{}, len(englishCommon)+len(englishCore))
	for w := range englishCore {
		s.english[w] = struct{}{}
	}
	for w := range englishCommon {
		if _, b := s.borrowed[w]; !b {
			s.english[w] = struct{}{}
		}
	}
}

// Version is a content hash of the snapshot
func (s *Set) Version() string { return s.version }

// Codes lists loaded ISO codes, sorted
func (s *Set) Codes() []string { return append([]string(nil), s.codes...) }

// Get returns the dictionary for an ISO code
func (s *Set) Get(iso string) (*Dictionary, bool) {
	d, ok := s.dicts[iso]
	return d, ok
}

// Len is the number of loaded dictionaries
func (s *Set) Len() int { return len(s.dicts) }

// Lookup returns every dictionary hit for a lowercased token, ordered by ISO code
func (s *Set) Lookup(roman string) []Hit { return s.index[roman] }

// Borrowed reports whether any dictionary lists w as a loanword
func (s *Set) Borrowed(w string) bool {
	_, ok := s.borrowed[w]
	return ok
}

// English reports whether w is in the everyday English vocabulary. Words a
// dictionary marks as borrowed are excluded so loanwords are neutral.
func (s *Set) English(w string) bool {
	_, ok := s.english[w]
	return ok
}
