package httpkit

import (
	"net/http"

	perr "codemix/internal/platform/errors"
	pnet "codemix/internal/platform/net"
)

// User returns the subject Auth stored on the request
func User(r *http.Request) (string, error) {
	if sub := pnet.Subject(r.Context()); sub != "" {
		return sub, nil
	}
	return "", perr.Unauthorizedf("unauthenticated request")
}
