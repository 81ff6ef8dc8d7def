package middleware

import (
	"net/http"

	pnet "codemix/internal/platform/net"
)

// AuthPort authenticates a request and names its subject
type AuthPort interface {
	Parse(r *http.Request) (subject string, err error)
}

// Auth rejects requests p cannot authenticate, writing the mapped error
// envelope through write. A nil port lets everything through.
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) Middleware {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, err := p.Parse(r)
			if err != nil {
				status, env := pnet.Failure(err, pnet.RequestID(r.Context()))
				write(w, status, env)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithSubject(r.Context(), sub)))
		})
	}
}
