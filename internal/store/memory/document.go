package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wakili/internal/identity"
	"wakili/internal/model"
	"wakili/internal/store"
)

// DocumentStore is an in-memory implementation of store.DocumentStore.
// Entries are never deleted, so the map only grows.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]string)}
}

var _ store.DocumentStore = (*DocumentStore)(nil)

func (s *DocumentStore) Put(_ context.Context, key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = text
	return nil
}

func (s *DocumentStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.docs[key]
	if !ok {
		return "", fmt.Errorf("document %s: %w", key, store.ErrNotFound)
	}
	return text, nil
}

func (s *DocumentStore) ListByOwner(_ context.Context, caller identity.Caller) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := store.OwnerPrefix(caller)
	out := make([]model.Document, 0)
	for k, v := range s.docs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, model.Document{Key: k, Text: v})
		}
	}
	return out, nil
}
