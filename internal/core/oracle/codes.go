package oracle

import (
	"strings"

	"codemix/internal/core/script"
)

// Unknown is the canonical code for guesses we cannot use
const Unknown = "unknown"

// aliases folds detector specific codes onto the ISO 639-3 codes the
// dictionaries use. Dialects and close relatives collapse onto the standard
// language; constructed and rare languages that romanized Indic text tends to
// trigger become Unknown.
var aliases = map[string]string{
	"hi": "hin", "hif": "hin", "bho": "hin", "awa": "hin", "mag": "hin", "mai": "hin",
	"ur": "hin", "urd": "hin",
	"mr": "mar", "tcz": "mar",
	"bn": "ben",
	"ta": "tam",
	"te": "tel",
	"kn": "kan",
	"ml": "mal",
	"gu": "guj",
	"pa": "pan", "pnb": "pan",
	"or": "ori", "ory": "ori",
	"sd": "snd",
	"ne": "nep",
	"en": "eng",

	"ido": Unknown, "io": Unknown, "jbo": Unknown, "lfn": Unknown, "vol": Unknown,
	"ia": Unknown, "ina": Unknown, "ie": Unknown, "ile": Unknown, "nov": Unknown,
	"eo": Unknown, "epo": Unknown,
	"und": Unknown, "zxx": Unknown, "mis": Unknown,
	"lua": Unknown, "luo": Unknown, "kde": Unknown, "kpe": Unknown, "kri": Unknown,
	"ksh": Unknown, "kua": Unknown, "ekk": Unknown, "uzn": Unknown,
}

// NormalizeCode lowercases code, strips any region or script suffix and maps
// aliases. Empty input is Unknown.
func NormalizeCode(code string) string {
	base, _ := splitLabel(code)
	if base == "" {
		return Unknown
	}
	if c, ok := aliases[base]; ok {
		return c
	}
	return base
}

// ParseLabel reads fastText style labels such as "__label__hin_Deva" or
// "en-US" into a normalized language and an optional script
func ParseLabel(label string) (string, script.Code) {
	base, suffix := splitLabel(label)
	lang := NormalizeCode(base)
	if suffix == "" {
		return lang, ""
	}
	for _, c := range append(script.IndicCodes(), script.Latin) {
		if strings.EqualFold(string(c), suffix) {
			return lang, c
		}
	}
	return lang, ""
}

func splitLabel(label string) (string, string) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "__label__")
	i := strings.IndexAny(s, "_-")
	if i < 0 {
		return strings.ToLower(s), ""
	}
	return strings.ToLower(s[:i]), s[i+1:]
}

var defaultScripts = map[string]script.Code{
	"hin": script.Devanagari, "mar": script.Devanagari, "nep": script.Devanagari, "san": script.Devanagari,
	"ben": script.Bengali, "asm": script.Bengali,
	"pan": script.Gurmukhi,
	"guj": script.Gujarati,
	"ori": script.Oriya,
	"tam": script.Tamil,
	"tel": script.Telugu,
	"kan": script.Kannada,
	"mal": script.Malayalam,
	"eng": script.Latin,
}

// DefaultScript is the usual native script of a language
func DefaultScript(lang string) (script.Code, bool) {
	c, ok := defaultScripts[lang]
	return c, ok
}

// IsIndic reports whether lang is written natively in an Indic script
func IsIndic(lang string) bool {
	c, ok := defaultScripts[lang]
	return ok && script.IsIndic(c)
}

var scriptLanguages = map[script.Code]string{
	script.Devanagari: "hin",
	script.Bengali:    "ben",
	script.Gurmukhi:   "pan",
	script.Gujarati:   "guj",
	script.Oriya:      "ori",
	script.Tamil:      "tam",
	script.Telugu:     "tel",
	script.Kannada:    "kan",
	script.Malayalam:  "mal",
}

// LanguageForScript is the most widely used language of an Indic script
func LanguageForScript(c script.Code) (string, bool) {
	l, ok := scriptLanguages[c]
	return l, ok
}
