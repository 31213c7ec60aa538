// Package sessions stores authenticated-session tokens in Badger with a
// TTL, so expiry is handled by the store rather than application code.
package sessions

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long a session lives after login or registration.
const DefaultTTL = 24 * time.Hour

const tokenKeyPrefix = "session:"

// Store persists session tokens in a Badger database.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the Badger database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, ttl: DefaultTTL}, nil
}

// NewWithDB wraps an already-open Badger database. Used by tests.
func NewWithDB(db *badger.DB) *Store {
	return &Store{db: db, ttl: DefaultTTL}
}

// Create issues a fresh opaque token bound to userID. The entry expires
// after the store TTL.
func (s *Store) Create(userID int) (string, error) {
	token := uuid.NewString()

	err := s.db.Update(func(txn *badger.Txn) error {
		val := make([]byte, 8)
		binary.BigEndian.PutUint64(val, uint64(userID))
		entry := badger.NewEntry([]byte(tokenKeyPrefix+token), val).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to the user id it was issued for. Expired or
// unknown tokens return ErrNotFound.
func (s *Store) Get(token string) (int, error) {
	var userID int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKeyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = int(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Delete revokes a token. Deleting an absent token is not an error.
func (s *Store) Delete(token string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(tokenKeyPrefix + token))
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
