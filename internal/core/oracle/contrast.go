package oracle

import (
	"codemix/internal/core/script"
	perr "codemix/internal/platform/errors"
)

// ErrNoContrast is returned for Latin text by an adapter whose language set
// holds fewer than two Latin script languages. The lone Latin candidate wins
// every romanized text, so its score says nothing about the language.
var ErrNoContrast = perr.New(perr.ErrorCodeUnavailable, "oracle has no latin contrast")

var scripts = script.NewAnalyzer()

func latinDominant(text string) bool {
	return scripts.Analyze(text).DominantScript == script.Latin
}
