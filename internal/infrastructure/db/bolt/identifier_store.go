// Package bolt provides a file-backed identifier store for single-node
// deployments and the portalctl companion tool, where a Redis instance is
// not available but the identifier must still survive a restart.
package bolt

import (
	"context"
	"fmt"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")
	keyIdentifier = []byte("identifier")
)

// IdentifierStore persists the session identifier in a bbolt file.
type IdentifierStore struct {
	db *bbolt.DB
}

// Open opens (or creates) the bbolt file at path and ensures the session
// bucket exists. The caller owns Close.
func Open(path string) (*IdentifierStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt open: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt init: %w", err)
	}

	return &IdentifierStore{db: db}, nil
}

func (s *IdentifierStore) Close() error {
	return s.db.Close()
}

// Load returns the stored identifier, or "" when none is stored.
func (s *IdentifierStore) Load(_ context.Context) (string, error) {
	var id string
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(keyIdentifier); v != nil {
			id = string(v)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("load identifier: %w", err)
	}
	return id, nil
}

// Save stores the identifier.
func (s *IdentifierStore) Save(_ context.Context, id string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyIdentifier, []byte(id))
	})
	if err != nil {
		return fmt.Errorf("save identifier: %w", err)
	}
	return nil
}

// Clear removes the identifier. Clearing an absent key is not an error.
func (s *IdentifierStore) Clear(_ context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyIdentifier)
	})
	if err != nil {
		return fmt.Errorf("clear identifier: %w", err)
	}
	return nil
}
