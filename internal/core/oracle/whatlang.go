package oracle

import (
	"context"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"codemix/internal/core/script"
)

// DefaultWhatlangWhitelist limits whatlanggo to the languages we can use
var DefaultWhatlangWhitelist = map[whatlanggo.Lang]bool{
	whatlanggo.Eng: true,
	whatlanggo.Hin: true,
	whatlanggo.Mar: true,
	whatlanggo.Ben: true,
	whatlanggo.Tam: true,
	whatlanggo.Tel: true,
	whatlanggo.Pan: true,
	whatlanggo.Guj: true,
	whatlanggo.Kan: true,
	whatlanggo.Mal: true,
	whatlanggo.Ori: true,
	whatlanggo.Urd: true,
	whatlanggo.Nep: true,
}

// whatlangLatin are the whatlanggo languages written in Latin script
var whatlangLatin = []whatlanggo.Lang{
	whatlanggo.Spa, whatlanggo.Eng, whatlanggo.Por, whatlanggo.Ind, whatlanggo.Fra,
	whatlanggo.Deu, whatlanggo.Jav, whatlanggo.Vie, whatlanggo.Ita, whatlanggo.Tur,
	whatlanggo.Pol, whatlanggo.Ron, whatlanggo.Nld, whatlanggo.Tgl, whatlanggo.Hun,
	whatlanggo.Ces, whatlanggo.Swe, whatlanggo.Fin, whatlanggo.Dan, whatlanggo.Afr,
}

// Whatlang wraps whatlanggo, which reports a single guess
type Whatlang struct {
	opts  whatlanggo.Options
	latin int
}

// NewWhatlang uses DefaultWhatlangWhitelist when whitelist is empty
func NewWhatlang(whitelist map[whatlanggo.Lang]bool) *Whatlang {
	if len(whitelist) == 0 {
		whitelist = DefaultWhatlangWhitelist
	}
	w := &Whatlang{opts: whatlanggo.Options{Whitelist: whitelist}}
	for _, l := range whatlangLatin {
		if whitelist[l] {
			w.latin++
		}
	}
	return w
}

// Identify implements Oracle. Text too short to share trigrams with any
// profile comes back without guesses.
func (w *Whatlang) Identify(ctx context.Context, text string) ([]Guess, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.latin < 2 && latinDominant(text) {
		return nil, ErrNoContrast
	}
	info := whatlanggo.DetectWithOptions(text, w.opts)
	if info.Lang < 0 {
		return nil, nil
	}
	code := info.Lang.Iso6393()
	if code == "" {
		return nil, nil
	}
	return []Guess{{Language: code, Script: scriptOf(info.Script), Confidence: info.Confidence}}, nil
}

func scriptOf(t *unicode.RangeTable) script.Code {
	if t == nil {
		return ""
	}
	if t == unicode.Latin {
		return script.Latin
	}
	for _, c := range script.IndicCodes() {
		if script.Table(c) == t {
			return c
		}
	}
	return ""
}
