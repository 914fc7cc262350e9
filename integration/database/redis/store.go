package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/passwordless/core/session"
)

// Store is a Redis-backed session.Store. Records are JSON values keyed by
// session ID; the claim transition runs as a Lua script, so the
// read-check-write executes atomically inside Redis.
//
// Keys expire a configurable retention window after the session deadline:
// an expired session stays readable for audit for that window and is then
// reaped by Redis itself.
type Store struct {
	client    *redislib.Client
	prefix    string
	retention time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides the default "passwordless:session:" key prefix.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRetention sets how long records outlive their session deadline.
func WithRetention(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.retention = d
		}
	}
}

// NewStore creates a session store on the given Redis client.
func NewStore(client *redislib.Client, opts ...StoreOption) *Store {
	s := &Store{
		client:    client,
		prefix:    "passwordless:session:",
		retention: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record is the JSON shape of a stored session.
type record struct {
	ID         string     `json:"id"`
	AuthType   string     `json:"authenticatable_type"`
	AuthID     string     `json:"authenticatable_id"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ClaimedAt  *time.Time `json:"claimed_at,omitempty"`
	RemoteAddr string     `json:"remote_addr,omitempty"`
	UserAgent  string     `json:"user_agent,omitempty"`
}

func toRecord(sess session.Session) record {
	rec := record{
		ID:         sess.ID,
		AuthType:   sess.Authenticatable.Type,
		AuthID:     sess.Authenticatable.ID.String(),
		CreatedAt:  sess.CreatedAt,
		ExpiresAt:  sess.ExpiresAt,
		RemoteAddr: sess.RemoteAddr,
		UserAgent:  sess.UserAgent,
	}
	if sess.IsClaimed() {
		at := sess.ClaimedAt
		rec.ClaimedAt = &at
	}
	return rec
}

func (r record) toSession() (session.Session, error) {
	ref, err := parseRef(r.AuthType, r.AuthID)
	if err != nil {
		return session.Session{}, err
	}
	sess := session.Session{
		ID:              r.ID,
		Authenticatable: ref,
		CreatedAt:       r.CreatedAt,
		ExpiresAt:       r.ExpiresAt,
		RemoteAddr:      r.RemoteAddr,
		UserAgent:       r.UserAgent,
	}
	if r.ClaimedAt != nil {
		sess.ClaimedAt = *r.ClaimedAt
	}
	return sess, nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// refKey indexes session ids per identity, for DeleteByAuthenticatable.
func (s *Store) refKey(ref session.Ref) string {
	return s.prefix + "ref:" + ref.String()
}

// Create implements session.Store. SET NX detects duplicate IDs.
func (s *Store) Create(ctx context.Context, sess session.Session) error {
	payload, err := json.Marshal(toRecord(sess))
	if err != nil {
		return err
	}

	ttl := time.Until(sess.ExpiresAt) + s.retention
	if ttl <= 0 {
		ttl = s.retention
	}

	ok, err := s.client.SetNX(ctx, s.key(sess.ID), payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrDuplicateID
	}

	// The index set expires with its longest-lived member: NX sets a TTL on
	// a fresh set, GT extends it monotonically on later logins.
	refKey := s.refKey(sess.Authenticatable)
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, refKey, sess.ID)
	pipe.ExpireNX(ctx, refKey, ttl)
	pipe.ExpireGT(ctx, refKey, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Get implements session.Store.
func (s *Store) Get(ctx context.Context, id string) (session.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return session.Session{}, err
	}
	return rec.toSession()
}

// claimScript performs the compare-and-set inside Redis: it fails when the
// record is gone (0) or already carries claimed_at (-1), otherwise writes
// the claim timestamp keeping the key's TTL.
var claimScript = redislib.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then
	return 0
end
local sess = cjson.decode(raw)
if sess.claimed_at then
	return -1
end
sess.claimed_at = ARGV[1]
redis.call('SET', KEYS[1], cjson.encode(sess), 'KEEPTTL')
return 1
`)

// MarkClaimed implements session.Store.
func (s *Store) MarkClaimed(ctx context.Context, id string, at time.Time) error {
	res, err := claimScript.Run(ctx, s.client, []string{s.key(id)}, at.Format(time.RFC3339Nano)).Int64()
	if err != nil {
		return err
	}
	switch res {
	case 1:
		return nil
	case -1:
		return session.ErrClaimConflict
	default:
		return session.ErrNotFound
	}
}

// DeleteByAuthenticatable implements session.Store.
func (s *Store) DeleteByAuthenticatable(ctx context.Context, ref session.Ref) error {
	ids, err := s.client.SMembers(ctx, s.refKey(ref)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, s.refKey(ref))

	return s.client.Del(ctx, keys...).Err()
}

// DeleteExpired implements session.Store. Redis reaps records itself via key
// TTLs after the retention window; this sweep deletes sessions that are past
// their deadline but still inside the window.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	var deleted int64
	now := time.Now()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			// Skip index sets and keys that expired mid-scan.
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if now.After(rec.ExpiresAt) {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return deleted, err
			}
			// Drop the id from its identity index so the set does not
			// accumulate pointers to reaped sessions.
			if ref, err := parseRef(rec.AuthType, rec.AuthID); err == nil {
				if err := s.client.SRem(ctx, s.refKey(ref), rec.ID).Err(); err != nil {
					return deleted, err
				}
			}
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	return deleted, nil
}
