package oracle

import (
	"strings"

	perr "codemix/internal/platform/errors"
)

// Kinds accepted by Build
const (
	KindLingua   = "lingua"
	KindWhatlang = "whatlang"
	KindNone     = "none"
)

// Kinds lists the accepted Build kinds
func Kinds() []string { return []string{KindLingua, KindWhatlang, KindNone} }

// Build returns the named adapter with its default language set
func Build(kind string) (Oracle, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindLingua:
		return NewLingua(), nil
	case KindWhatlang, "":
		return NewWhatlang(nil), nil
	case KindNone:
		return None{}, nil
	default:
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "unknown oracle kind %q", kind)
	}
}
