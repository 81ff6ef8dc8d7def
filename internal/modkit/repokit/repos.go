// Package repokit is the storage surface repositories code against, so
// service packages depend on neither a driver nor the store package
package repokit

import (
	"context"

	"codemix/internal/platform/store"
)

type (
	// Queryer runs statements, inside or outside a transaction
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open a transaction
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
)

// InTx runs fn in one transaction on db. A nil db runs nothing and
// reports no error so optional backends can be skipped by callers.
func InTx(ctx context.Context, db TxRunner, fn func(q Queryer) error) error {
	if db == nil {
		return nil
	}
	return db.Tx(ctx, fn)
}
