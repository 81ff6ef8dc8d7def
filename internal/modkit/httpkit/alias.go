// Package httpkit is the HTTP surface modules use, so they never import
// the platform transport packages directly
package httpkit

import (
	"net/http"

	phttp "codemix/internal/platform/net/http"
	"codemix/internal/platform/net/middleware"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Response is a return style handler result
	Response = phttp.Response
	// Envelope is the JSON response body
	Envelope = phttp.Envelope
	// AuthPort authenticates requests on Protected routes
	AuthPort = middleware.AuthPort
)

// Param returns a URL parameter of the matched route
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Accepted returns a 202 response
func Accepted(data any) Response { return Response{Status: http.StatusAccepted, Body: data} }
