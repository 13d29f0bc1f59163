// Package credstore persists the session token and user id between
// runs. It is the client's only durable state.
package credstore

import (
	"errors"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

var (
	keyToken  = []byte("token")
	keyUserID = []byte("userId")
)

// Store is a small KV wrapper around badger holding the persisted
// credentials.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at dir.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("credstore: dir is required")
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Credentials returns the persisted token and user id. ok is false when
// either is missing.
func (s *Store) Credentials() (token, userID string, ok bool, err error) {
	if s == nil || s.db == nil {
		return "", "", false, errors.New("credstore: not opened")
	}
	err = s.db.View(func(txn *badger.Txn) error {
		var e error
		if token, e = getString(txn, keyToken); e != nil {
			return e
		}
		userID, e = getString(txn, keyUserID)
		return e
	})
	if err != nil {
		return "", "", false, err
	}
	return token, userID, token != "" && userID != "", nil
}

// SetCredentials stores the token and user id atomically.
func (s *Store) SetCredentials(token, userID string) error {
	if s == nil || s.db == nil {
		return errors.New("credstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(keyToken, []byte(token)); err != nil {
			return err
		}
		return txn.Set(keyUserID, []byte(userID))
	})
}

// Clear removes any persisted credentials.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return errors.New("credstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := deleteKey(txn, keyToken); err != nil {
			return err
		}
		return deleteKey(txn, keyUserID)
	})
}

func getString(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	var out string
	err = item.Value(func(val []byte) error {
		out = string(val)
		return nil
	})
	return out, err
}

func deleteKey(txn *badger.Txn, key []byte) error {
	if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	return nil
}
