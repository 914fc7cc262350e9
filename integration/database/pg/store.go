package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/passwordless/core/session"
)

// uniqueViolation is the Postgres error code for duplicate key values.
const uniqueViolation = "23505"

// Store is a Postgres-backed session.Store built on pgx. The claim
// transition is a single conditional UPDATE guarded by claimed_at, so two
// concurrent claims can never both succeed.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a session store on the given connection pool.
// The passwordless_sessions table must exist; see Migrate.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// db returns the transaction carried by ctx, if any, falling back to the
// pool. Lets callers enroll session writes in their own transactions.
func (s *Store) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// Create implements session.Store.
func (s *Store) Create(ctx context.Context, sess session.Session) error {
	const query = `
		INSERT INTO passwordless_sessions
			(id, authenticatable_type, authenticatable_id, created_at, expires_at, remote_addr, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db(ctx).Exec(ctx, query,
		sess.ID,
		sess.Authenticatable.Type,
		sess.Authenticatable.ID,
		sess.CreatedAt,
		sess.ExpiresAt,
		sess.RemoteAddr,
		sess.UserAgent,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return session.ErrDuplicateID
		}
		return err
	}
	return nil
}

// Get implements session.Store.
func (s *Store) Get(ctx context.Context, id string) (session.Session, error) {
	const query = `
		SELECT id, authenticatable_type, authenticatable_id, created_at, expires_at, claimed_at, remote_addr, user_agent
		FROM passwordless_sessions
		WHERE id = $1
	`
	row := s.db(ctx).QueryRow(ctx, query, id)

	var sess session.Session
	var claimedAt *time.Time
	err := row.Scan(
		&sess.ID,
		&sess.Authenticatable.Type,
		&sess.Authenticatable.ID,
		&sess.CreatedAt,
		&sess.ExpiresAt,
		&claimedAt,
		&sess.RemoteAddr,
		&sess.UserAgent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	if claimedAt != nil {
		sess.ClaimedAt = *claimedAt
	}
	return sess, nil
}

// MarkClaimed implements session.Store. The claimed_at guard in the WHERE
// clause makes the update a compare-and-set: of two racing claims exactly
// one row update wins.
func (s *Store) MarkClaimed(ctx context.Context, id string, at time.Time) error {
	const query = `
		UPDATE passwordless_sessions
		SET claimed_at = $2
		WHERE id = $1 AND claimed_at IS NULL
	`
	tag, err := s.db(ctx).Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// No row updated: either the session does not exist or another claim
	// already landed.
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return session.ErrClaimConflict
}

// DeleteByAuthenticatable implements session.Store.
func (s *Store) DeleteByAuthenticatable(ctx context.Context, ref session.Ref) error {
	const query = `
		DELETE FROM passwordless_sessions
		WHERE authenticatable_type = $1 AND authenticatable_id = $2
	`
	_, err := s.db(ctx).Exec(ctx, query, ref.Type, ref.ID)
	return err
}

// DeleteExpired implements session.Store.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM passwordless_sessions WHERE expires_at < now()`
	tag, err := s.db(ctx).Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
