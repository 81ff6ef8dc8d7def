// Package modkit assembles API modules from shared deps and functional options
package modkit

import "codemix/internal/modkit/module"

// Module is what the API mounts; see module.Module
type Module = module.Module
