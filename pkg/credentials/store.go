// Package credentials holds the single API key the summarizer needs.
package credentials

import (
	"context"
	"sync"

	"github.com/dtnitsch/breezy/pkg/db"
)

// APIKeyName is the well-known name the Gemini key is stored under.
const APIKeyName = "geminiApiKey"

// Store persists named opaque values.
type Store interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
	Remove(ctx context.Context, name string) error
}

// DBStore keeps credentials in the SQLite database.
type DBStore struct {
	db *db.DB
}

func NewDBStore(database *db.DB) *DBStore {
	return &DBStore{db: database}
}

func (s *DBStore) Get(ctx context.Context, name string) (string, bool, error) {
	return s.db.GetCredential(ctx, name)
}

func (s *DBStore) Set(ctx context.Context, name, value string) error {
	return s.db.SetCredential(ctx, name, value)
}

func (s *DBStore) Remove(ctx context.Context, name string) error {
	return s.db.RemoveCredential(ctx, name)
}

// MemoryStore is an in-process Store, used for overrides and tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[name]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	return nil
}

// Override answers Get for APIKeyName with a fixed key and delegates
// everything else. Used when --api-key or GEMINI_API_KEY is given.
type Override struct {
	Store
	apiKey string
}

func WithOverride(store Store, apiKey string) Store {
	if apiKey == "" {
		return store
	}
	return &Override{Store: store, apiKey: apiKey}
}

func (o *Override) Get(ctx context.Context, name string) (string, bool, error) {
	if name == APIKeyName {
		return o.apiKey, true, nil
	}
	return o.Store.Get(ctx, name)
}
