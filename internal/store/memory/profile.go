package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wakili/internal/identity"
	"wakili/internal/model"
	"wakili/internal/store"
)

// ProfileStore is an in-memory implementation of store.ProfileStore.
// A single mutex guards the map; the lock is never held across a network
// call, so concurrent requests interleave their own mutations freely.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[identity.Caller]model.UserProfile
	now      func() time.Time
}

// NewProfileStore creates an empty in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[identity.Caller]model.UserProfile),
		now:      time.Now,
	}
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// getOrCreate applies the lazy-init rule. Callers must hold s.mu.
func (s *ProfileStore) getOrCreate(caller identity.Caller) model.UserProfile {
	p, ok := s.profiles[caller]
	if !ok {
		p = model.UserProfile{DocumentCount: 0}
	}
	return p
}

func (s *ProfileStore) Touch(_ context.Context, caller identity.Caller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getOrCreate(caller)
	p.LastActive = s.now()
	s.profiles[caller] = p
	return nil
}

func (s *ProfileStore) IncrementDocumentCount(_ context.Context, caller identity.Caller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[caller]
	if !ok {
		// Orchestrators always Touch before incrementing, so this is a logic error.
		return fmt.Errorf("increment document count for %s: %w", caller, store.ErrNotFound)
	}
	p.DocumentCount++
	p.LastActive = s.now()
	s.profiles[caller] = p
	return nil
}

func (s *ProfileStore) SetName(_ context.Context, caller identity.Caller, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getOrCreate(caller)
	p.Name = &name
	p.LastActive = s.now()
	s.profiles[caller] = p
	return nil
}

func (s *ProfileStore) Get(_ context.Context, caller identity.Caller) (*model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[caller]
	if !ok {
		return nil, fmt.Errorf("profile for %s: %w", caller, store.ErrNotFound)
	}
	out := p
	return &out, nil
}
