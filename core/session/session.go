package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ref is an opaque reference to the identity that owns a session:
// the identity class plus its primary key. The core never interprets the
// type beyond equality checks; resolving a Ref back to a concrete record
// is the job of an identity resolver (see core/authctx).
type Ref struct {
	Type string
	ID   uuid.UUID
}

// NewRef creates a reference to an identity record.
func NewRef(typ string, id uuid.UUID) Ref {
	return Ref{Type: typ, ID: id}
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == uuid.Nil
}

// String renders the reference as "type:id", usable as a storage key.
func (r Ref) String() string {
	return fmt.Sprintf("%s:%s", r.Type, r.ID)
}

// Provenance is contextual metadata captured at session creation for audit.
// The core stores it verbatim and never interprets it.
type Provenance struct {
	RemoteAddr string
	UserAgent  string
}

// Session is one issued, potentially claimable login credential.
//
// ID is both the lookup key and the bearer credential: an unguessable random
// token generated at issuance, delivered to the user out-of-band (typically
// as a magic link) and later presented for claiming.
type Session struct {
	// ID is the opaque session token. Unique across all sessions ever issued.
	ID string

	// Authenticatable references the identity this session logs in.
	Authenticatable Ref

	CreatedAt time.Time

	// ExpiresAt is the instant after which the session can no longer be
	// claimed. Always strictly after CreatedAt.
	ExpiresAt time.Time

	// ClaimedAt is set exactly once, at the first successful claim.
	// Zero value means the session has never been claimed.
	ClaimedAt time.Time

	// Provenance captured at creation.
	RemoteAddr string
	UserAgent  string
}

// IsExpired reports whether the session is past its deadline.
// Expiry is terminal: an expired session must never be revived.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsClaimed reports whether the session token has been redeemed.
func (s Session) IsClaimed() bool {
	return !s.ClaimedAt.IsZero()
}
