package modkit

import (
	"codemix/internal/modkit/repokit"
	"codemix/internal/platform/config"
	"codemix/internal/platform/store"
)

// Deps are the shared handles every module constructor receives. Stores
// that are not configured stay nil.
type Deps struct {
	Cfg  config.Conf
	PG   repokit.TxRunner
	CH   store.Clickhouse
	Lite repokit.TxRunner
}
