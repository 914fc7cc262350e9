// Package mongo provides the MongoDB-backed session store with connection
// management tuned for Atlas deployments.
//
// The session token is the document _id, so duplicate detection rides on the
// primary index and token lookups are point reads. The claim transition is a
// single conditional UpdateOne matching only documents without a claimed_at
// field, which gives compare-and-set semantics without transactions.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Disconnect(ctx)
//
//	store := mongo.NewStore(client.Database("app").Collection(mongo.DefaultCollection))
//	if err := store.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//	mgr, err := session.NewManager(store)
//
// New and NewWithDatabase retry the initial ping to ride out Atlas cold
// starts, and Healthcheck returns a probe for readiness endpoints.
package mongo
