package db

import (
	"context"
	"errors"
	"fmt"
)

// AdvisoryLock serializes writers that share Key for the lifetime of the
// surrounding transaction. PostgreSQL releases the lock on commit or
// rollback, so there is no unlock call.
type AdvisoryLock struct {
	Key int64
}

// Lock blocks until the lock is held by the transaction bound to ctx.
func (l AdvisoryLock) Lock(ctx context.Context) error {
	tx := TxFromContext(ctx)
	if tx == nil {
		return errors.New("advisory lock requires a transaction in context")
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, l.Key); err != nil {
		return fmt.Errorf("acquire advisory lock %d: %w", l.Key, err)
	}
	return nil
}
