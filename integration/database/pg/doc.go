// Package pg provides the Postgres-backed session store and its schema
// migrations.
//
// The claim transition maps to a single conditional UPDATE guarded by
// claimed_at IS NULL, giving the compare-and-set semantics the lifecycle
// engine requires without explicit locking.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := pg.Migrate(ctx, pool); err != nil {
//		log.Fatal(err)
//	}
//	store := pg.NewStore(pool)
//	mgr, err := session.NewManager(store)
//
// Store operations respect a pgx.Tx carried in the context via WithTx, so
// session writes can join a caller's transaction.
package pg
