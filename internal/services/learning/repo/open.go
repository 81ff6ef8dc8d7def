package repo

import (
	"strings"

	"codemix/internal/modkit/repokit"
	perr "codemix/internal/platform/errors"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendPG     = "pg"
	BackendMemory = "memory"
)

// Seams are the already opened databases Open may bind to
type Seams struct {
	PG   repokit.TxRunner
	Lite repokit.TxRunner
}

// Open picks a backend by name. File paths ending in .mp use msgpack.
func Open(backend, path, name string, seams Seams) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		if path == "" {
			return nil, perr.WithField(perr.New(perr.ErrorCodeInvalidArgument, "file backend needs a path"), "path")
		}
		return NewFile(path), nil
	case BackendSQLite:
		if seams.Lite == nil {
			return nil, perr.New(perr.ErrorCodeInvalidArgument, "sqlite backend needs an open database")
		}
		return NewSQL(seams.Lite, DialectSQLite, name), nil
	case BackendPG:
		if seams.PG == nil {
			return nil, perr.New(perr.ErrorCodeInvalidArgument, "pg backend needs an open pool")
		}
		return NewSQL(seams.PG, DialectPG, name), nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "unknown learning backend %q", backend)
	}
}
