package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongolib "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/passwordless/core/session"

	"github.com/google/uuid"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "passwordless_sessions"

// Store is a MongoDB-backed session.Store. The session token is the
// document _id, so duplicate detection rides on the collection's primary
// index and lookups are point reads.
type Store struct {
	coll *mongolib.Collection
}

// NewStore creates a session store on the given collection.
func NewStore(coll *mongolib.Collection) *Store {
	return &Store{coll: coll}
}

// document is the BSON shape of a stored session. ClaimedAt is a pointer so
// an unclaimed session stores no field at all, which the claim filter
// relies on.
type document struct {
	ID         string     `bson:"_id"`
	AuthType   string     `bson:"authenticatable_type"`
	AuthID     string     `bson:"authenticatable_id"`
	CreatedAt  time.Time  `bson:"created_at"`
	ExpiresAt  time.Time  `bson:"expires_at"`
	ClaimedAt  *time.Time `bson:"claimed_at,omitempty"`
	RemoteAddr string     `bson:"remote_addr,omitempty"`
	UserAgent  string     `bson:"user_agent,omitempty"`
}

func toDocument(sess session.Session) document {
	doc := document{
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
		doc.ClaimedAt = &at
	}
	return doc
}

func (d document) toSession() (session.Session, error) {
	uid, err := uuid.Parse(d.AuthID)
	if err != nil {
		return session.Session{}, errors.Join(ErrMalformedDocument, err)
	}
	sess := session.Session{
		ID:              d.ID,
		Authenticatable: session.NewRef(d.AuthType, uid),
		CreatedAt:       d.CreatedAt,
		ExpiresAt:       d.ExpiresAt,
		RemoteAddr:      d.RemoteAddr,
		UserAgent:       d.UserAgent,
	}
	if d.ClaimedAt != nil {
		sess.ClaimedAt = *d.ClaimedAt
	}
	return sess, nil
}

// Create implements session.Store.
func (s *Store) Create(ctx context.Context, sess session.Session) error {
	_, err := s.coll.InsertOne(ctx, toDocument(sess))
	if err != nil {
		if mongolib.IsDuplicateKeyError(err) {
			return session.ErrDuplicateID
		}
		return err
	}
	return nil
}

// Get implements session.Store.
func (s *Store) Get(ctx context.Context, id string) (session.Session, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongolib.ErrNoDocuments) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	return doc.toSession()
}

// MarkClaimed implements session.Store. The filter matches only documents
// without a claimed_at field, so concurrent claimers race on a single
// conditional update and exactly one wins.
func (s *Store) MarkClaimed(ctx context.Context, id string, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "claimed_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"claimed_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// No match: either the record is gone or someone else claimed first.
	err = s.coll.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongolib.ErrNoDocuments) {
		return session.ErrNotFound
	}
	if err != nil {
		return err
	}
	return session.ErrClaimConflict
}

// DeleteByAuthenticatable implements session.Store.
func (s *Store) DeleteByAuthenticatable(ctx context.Context, ref session.Ref) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{
		"authenticatable_type": ref.Type,
		"authenticatable_id":   ref.ID.String(),
	})
	return err
}

// DeleteExpired implements session.Store.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the lookup index on the identity reference. The _id
// index covers token lookups already.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongolib.IndexModel{
		{
			Keys: bson.D{
				{Key: "authenticatable_type", Value: 1},
				{Key: "authenticatable_id", Value: 1},
			},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expires_at_sweep"),
		},
	})
	return err
}
