// Package module is the contract modkit modules satisfy, kept apart so
// module packages can import it without importing modkit
package module

import phttp "codemix/internal/platform/net/http"

// Module mounts routes and exposes ports for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
