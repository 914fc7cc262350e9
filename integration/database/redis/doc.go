// Package redis provides the Redis-backed session store.
//
// Sessions are stored as JSON values keyed by token; the claim transition
// runs as a Lua script so the check-and-write is atomic on the server. Keys
// carry a TTL of the session deadline plus a retention window, so expired
// sessions stay readable for audit and Redis eventually reaps them itself.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := redis.NewStore(client, redis.WithRetention(48*time.Hour))
//	mgr, err := session.NewManager(store)
package redis
