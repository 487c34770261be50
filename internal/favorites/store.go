// Package favorites persists the user's favorited file codes in a local
// key-value store. The whole ordered list lives under a single key and is
// rewritten after every mutation, mirroring the durable-local-storage
// contract the browse surface expects.
package favorites

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// storageKey is the single key holding the JSON-encoded list of codes.
const storageKey = "favorites"

// Store is a persisted, ordered, unique set of file codes. Membership is
// mutated only through Toggle.
type Store struct {
	db *badger.DB

	mu    sync.Mutex
	codes []string
	index map[string]struct{}
}

// Open opens (or creates) the store at the given directory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites db: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an already-open badger database. The persisted list is read
// once; absence or malformed data yields an empty set, never an error.
func NewStore(db *badger.DB) (*Store, error) {
	s := &Store{
		db:    db,
		index: make(map[string]struct{}),
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read favorites, starting empty")
		return
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		log.Warn().Err(err).Msg("Malformed favorites data, starting empty")
		return
	}

	for _, code := range codes {
		if _, ok := s.index[code]; ok {
			continue
		}
		s.index[code] = struct{}{}
		s.codes = append(s.codes, code)
	}
}

// IsFavorite reports membership of a file code.
func (s *Store) IsFavorite(fileCode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[fileCode]
	return ok
}

// Toggle flips membership of a file code and persists the updated list
// before returning. The returned bool is the new membership state.
func (s *Store) Toggle(fileCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[fileCode]; ok {
		delete(s.index, fileCode)
		for i, code := range s.codes {
			if code == fileCode {
				s.codes = append(s.codes[:i], s.codes[i+1:]...)
				break
			}
		}
		return false, s.persist()
	}

	s.index[fileCode] = struct{}{}
	s.codes = append(s.codes, fileCode)
	return true, s.persist()
}

// List returns the favorited codes in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Count returns the number of favorited codes.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}

// persist writes the whole list under the storage key. Caller holds the lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.codes)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(storageKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
