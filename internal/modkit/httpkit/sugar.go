package httpkit

import (
	"net/http"

	phttp "codemix/internal/platform/net/http"
)

// PostJSON mounts a handler that receives a decoded and validated T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get mounts a handler that reads no body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.CallHandler(h))
}
