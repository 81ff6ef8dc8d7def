// Package dictionary loads romanized to native script lookup tables, one per
// Indic language, and publishes them as immutable versioned snapshots.
package dictionary

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"codemix/internal/core/script"
	perr "codemix/internal/platform/errors"
)

// CategoryBorrowed holds loanwords; they convert but never count as evidence
const CategoryBorrowed = "borrowed"

// Format is a dictionary document encoding
type Format string

const (
	// FormatJSON is the default encoding
	FormatJSON Format = "json"
	// FormatYAML is accepted for hand edited files
	FormatYAML Format = "yaml"
)

// FormatOf picks a format from a file extension, JSON by default
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Document is the on disk shape of a dictionary
type Document struct {
	Language   string                       `json:"language" yaml:"language"`
	Script     string                       `json:"script" yaml:"script"`
	ISOCode    string                       `json:"iso_code" yaml:"iso_code"`
	Categories map[string]map[string]string `json:"categories" yaml:"categories"`
}

// Entry is one romanized key resolved inside a dictionary
type Entry struct {
	Native   string
	Category string
}

// Borrowed reports whether the entry is a loanword
func (e Entry) Borrowed() bool { return e.Category == CategoryBorrowed }

// Dictionary is a validated, read only lookup table for one language
type Dictionary struct {
	Language string
	Script   script.Code
	ISOCode  string

	doc     Document
	entries map[string]Entry
}

// Lookup resolves a lowercased romanized token
func (d *Dictionary) Lookup(roman string) (Entry, bool) {
	e, ok := d.entries[roman]
	return e, ok
}

// Len is the number of distinct romanized keys
func (d *Dictionary) Len() int { return len(d.entries) }

// Keys returns every romanized key, sorted
func (d *Dictionary) Keys() []string {
	out := make([]string, 0, len(d.entries))
	for k := range d.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Categories returns the category names, sorted
func (d *Dictionary) Categories() []string {
	out := make([]string, 0, len(d.doc.Categories))
	for k := range d.doc.Categories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Document returns the normalized source document
func (d *Dictionary) Document() Document { return d.doc }

// scriptNames accepts ISO codes and the common English names
var scriptNames = map[string]script.Code{
	"devanagari": script.Devanagari,
	"bengali":    script.Bengali,
	"bangla":     script.Bengali,
	"gurmukhi":   script.Gurmukhi,
	"gujarati":   script.Gujarati,
	"oriya":      script.Oriya,
	"odia":       script.Oriya,
	"tamil":      script.Tamil,
	"telugu":     script.Telugu,
	"kannada":    script.Kannada,
	"malayalam":  script.Malayalam,
}

func parseScript(s string) (script.Code, bool) {
	s = strings.TrimSpace(s)
	for _, c := range script.IndicCodes() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	c, ok := scriptNames[strings.ToLower(s)]
	return c, ok
}

// Decode reads and validates one dictionary document
func Decode(r io.Reader, f Format) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, loadErr(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read dictionary"), "")
	}
	return Parse(data, f)
}

// Parse validates raw bytes in the given format
func Parse(data []byte, f Format) (*Dictionary, error) {
	var doc Document
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, loadErr(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse yaml"), "")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, loadErr(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse json"), "")
		}
	}
	return FromDocument(doc)
}

// FromDocument validates doc and builds the lookup table. Keys are trimmed and
// lowercased; when a key appears in several categories a non borrowed entry
// wins, then the first category in sorted order.
func FromDocument(doc Document) (*Dictionary, error) {
	doc.Language = strings.TrimSpace(doc.Language)
	doc.ISOCode = strings.ToLower(strings.TrimSpace(doc.ISOCode))

	if doc.Language == "" {
		return nil, loadErr(perr.New(perr.ErrorCodeInvalidArgument, "language is required"), "language")
	}
	if len(doc.ISOCode) != 3 {
		return nil, loadErr(perr.Newf(perr.ErrorCodeInvalidArgument, "iso_code %q must be a 3 letter ISO 639-3 code", doc.ISOCode), "iso_code")
	}
	code, ok := parseScript(doc.Script)
	if !ok {
		return nil, loadErr(perr.Newf(perr.ErrorCodeInvalidArgument, "unsupported script %q", doc.Script), "script")
	}
	doc.Script = string(code)
	if len(doc.Categories) == 0 {
		return nil, loadErr(perr.New(perr.ErrorCodeInvalidArgument, "at least one category is required"), "categories")
	}

	cats := make([]string, 0, len(doc.Categories))
	for c := range doc.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	clean := make(map[string]map[string]string, len(cats))
	entries := map[string]Entry{}
	for _, cat := range cats {
		name := strings.ToLower(strings.TrimSpace(cat))
		if name == "" {
			return nil, loadErr(perr.New(perr.ErrorCodeInvalidArgument, "empty category name"), "categories")
		}
		bucket := clean[name]
		if bucket == nil {
			bucket = map[string]string{}
			clean[name] = bucket
		}
		for k, v := range doc.Categories[cat] {
			key := strings.ToLower(strings.TrimSpace(k))
			native := strings.TrimSpace(v)
			if key == "" || native == "" {
				return nil, loadErr(perr.Newf(perr.ErrorCodeInvalidArgument, "empty key or value in category %q", name), "categories."+name)
			}
			if !nativeIn(native, code) {
				return nil, loadErr(perr.Newf(perr.ErrorCodeInvalidArgument, "%q is not %s text", native, code), "categories."+name+"."+key)
			}
			bucket[key] = native
			e := Entry{Native: native, Category: name}
			if cur, dup := entries[key]; dup && !(cur.Borrowed() && !e.Borrowed()) {
				continue
			}
			entries[key] = e
		}
	}
	doc.Categories = clean

	return &Dictionary{
		Language: doc.Language,
		Script:   code,
		ISOCode:  doc.ISOCode,
		doc:      doc,
		entries:  entries,
	}, nil
}

// nativeIn requires at least one letter of the declared script
func nativeIn(s string, code script.Code) bool {
	for _, r := range s {
		if cl := script.Classify(r); cl.Kind == script.KindIndic && cl.Script == code {
			return true
		}
	}
	return false
}

// Encode writes d back out in the requested format
func Encode(w io.Writer, d *Dictionary, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.doc); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "encode yaml")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d.doc); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode json")
		}
		return nil
	}
}

const opLoad = "dictionary.load"

func loadErr(err error, field string) error {
	err = perr.WithOp(err, opLoad)
	if field != "" {
		err = perr.WithField(err, field)
	}
	return err
}

// IsLoadError reports whether err came from dictionary validation
func IsLoadError(err error) bool {
	e, ok := perr.As(err)
	return ok && e.Op() == opLoad
}
