package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// txKey is an unexported context key type, avoiding collisions with other
// packages' context values.
type txKey struct{}

// WithTx returns a context carrying tx. Store operations performed with the
// returned context run inside that transaction instead of the pool, so
// session writes can be enrolled in a caller's unit of work (e.g. creating
// the user and their first session atomically).
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext extracts a transaction stored with WithTx.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
