package redis

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/passwordless/core/session"
)

func parseRef(typ, id string) (session.Ref, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return session.Ref{}, errors.Join(ErrMalformedRecord, err)
	}
	return session.NewRef(typ, uid), nil
}
