package httpkit

import (
	"net/http"

	phttp "codemix/internal/platform/net/http"
	"codemix/internal/platform/net/middleware"
)

// Auth rejects requests p does not authenticate with an error envelope
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// Protected registers fn's routes behind Auth(p). A nil p leaves them open.
func Protected(r Router, p AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(p))
		fn(g)
	})
}
