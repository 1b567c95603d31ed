// Package buntdb provides a TokenStore backed by an embedded buntdb database.
// Entries expire on their own once the revoked token would have expired
// anyway, so the store never grows past the set of live tokens.
package buntdb

import (
	"context"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/openid-go/openid/x/errorsx"
)

const keyPrefix = "revocation:"

// RevocationStore tracks consumed authorization codes and revoked tokens.
type RevocationStore struct {
	db *buntdb.DB
}

// New opens a store at path. Use ":memory:" for an ephemeral store.
func New(path string) (*RevocationStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	return &RevocationStore{db: db}, nil
}

// IsRevoked reports whether tokenID was previously revoked.
func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	err := s.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Get(keyPrefix + tokenID)

		return err
	})

	switch err {
	case nil:
		return true, nil
	case buntdb.ErrNotFound:
		return false, nil
	default:
		return false, errorsx.WithStack(err)
	}
}

// Revoke marks tokenID as revoked until lifetime has passed. Repeated
// revocations extend the entry, they are never an error.
func (s *RevocationStore) Revoke(_ context.Context, tokenID string, lifetime time.Duration) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(keyPrefix+tokenID, time.Now().UTC().Format(time.RFC3339), &buntdb.SetOptions{
			Expires: true,
			TTL:     lifetime,
		})

		return err
	})
	if err != nil {
		return errorsx.WithStack(err)
	}

	return nil
}

// Close releases the underlying database.
func (s *RevocationStore) Close() error {
	return s.db.Close()
}
