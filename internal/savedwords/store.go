package savedwords

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

//go:generate mockgen -source=store.go -destination=../mocks/savedwords/mock_backend.go -package=mock_savedwords

// Backend is the key-value collaborator the store persists through.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type SaveStatus int

const (
	Saved SaveStatus = iota
	Duplicate
)

func (s SaveStatus) String() string {
	switch s {
	case Saved:
		return "saved"
	case Duplicate:
		return "duplicate"
	default:
		return fmt.Sprintf("SaveStatus(%d)", int(s))
	}
}

// Store keeps one entry per normalized original text. Writes are a
// read-modify-write of the whole mapping without a transaction.
type Store struct {
	backend Backend
	now     func() time.Time
	mu      sync.Mutex
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
	}
}

func (s *Store) load(ctx context.Context) (*Words, error) {
	raw, ok, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("backend.Get(%s) > %w", StorageKey, err)
	}
	words := NewWords()
	if !ok || len(raw) == 0 {
		return words, nil
	}
	if err := json.Unmarshal(raw, words); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", StorageKey, err)
	}
	return words, nil
}

func (s *Store) write(ctx context.Context, words *Words) error {
	raw, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("json.Marshal(%s) > %w", StorageKey, err)
	}
	if err := s.backend.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("backend.Set(%s) > %w", StorageKey, err)
	}
	return nil
}

// Save adds entry unless its key is already present, in which case it
// returns Duplicate and leaves the store unchanged.
func (s *Store) Save(ctx context.Context, entry Entry) (SaveStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.load(ctx)
	if err != nil {
		return Saved, err
	}
	key := entry.Key()
	if words.Has(key) {
		return Duplicate, nil
	}
	if entry.SavedAt.IsZero() {
		entry.SavedAt = s.now()
	}
	entry.SavedAt = entry.SavedAt.UTC().Truncate(time.Millisecond)
	words.Add(key, entry)
	if err := s.write(ctx, words); err != nil {
		return Saved, err
	}
	return Saved, nil
}

// List returns every entry in insertion order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return words.Entries(), nil
}

// Recent returns the last n entries, most recent first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return MostRecent(entries, n), nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Clear replaces the mapping with an empty one.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(ctx, NewWords())
}

// MostRecent takes the last n entries of an insertion-ordered list and
// reverses them.
func MostRecent(entries []Entry, n int) []Entry {
	if n < 0 {
		n = 0
	}
	start := len(entries) - n
	if start < 0 {
		start = 0
	}
	recent := make([]Entry, 0, len(entries)-start)
	for i := len(entries) - 1; i >= start; i-- {
		recent = append(recent, entries[i])
	}
	return recent
}
