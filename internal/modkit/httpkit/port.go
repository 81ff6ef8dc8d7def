package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "codemix/internal/platform/errors"
)

// TokenFunc maps a bearer token to the subject it authenticates
type TokenFunc func(token string) (subject string, err error)

// Port implements AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port around fn
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// StaticToken accepts one shared token as subject. An empty token rejects everything.
func StaticToken(token, subject string) *Port {
	return NewPortFunc(func(raw string) (string, error) {
		if token == "" || subtle.ConstantTimeCompare([]byte(raw), []byte(token)) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		return subject, nil
	})
}

// Parse reads "Authorization: Bearer <token>". Parser errors are not
// echoed to the client.
func (p *Port) Parse(r *http.Request) (string, error) {
	scheme, raw, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	raw = strings.TrimSpace(raw)
	if !strings.EqualFold(scheme, "bearer") || raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if p == nil || p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	sub, err := p.parse(raw)
	if err != nil || sub == "" {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}
