package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/shoplite/storefront/internal/domain/shared"
)

// ErrStorageClosed is returned by every operation on a closed storage.
var ErrStorageClosed = errors.New("cache: profile storage is closed")

// InMemoryProfileStorage implements ProfileStorage using in-process maps.
// This is suitable for single-instance deployments and testing; contents are
// lost when the process exits.
type InMemoryProfileStorage struct {
	mu       sync.RWMutex
	profiles map[string]map[string]string
	closed   bool
}

// NewInMemoryProfileStorage creates an empty in-memory profile storage
func NewInMemoryProfileStorage() *InMemoryProfileStorage {
	return &InMemoryProfileStorage{
		profiles: make(map[string]map[string]string),
	}
}

// Profile returns the store scoped to profileID
func (s *InMemoryProfileStorage) Profile(profileID string) shared.KeyValueStore {
	return &inMemoryProfile{storage: s, profileID: profileID}
}

// Ping fails only after Close
func (s *InMemoryProfileStorage) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStorageClosed
	}
	return nil
}

// Close drops all profiles. Safe to call multiple times.
func (s *InMemoryProfileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.profiles = nil
	return nil
}

// ProfileCount returns the number of profiles holding at least one key (for testing/monitoring)
func (s *InMemoryProfileStorage) ProfileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

type inMemoryProfile struct {
	storage   *InMemoryProfileStorage
	profileID string
}

func (p *inMemoryProfile) Get(ctx context.Context, key string) (string, bool, error) {
	s := p.storage
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrStorageClosed
	}
	value, ok := s.profiles[p.profileID][key]
	return value, ok, nil
}

func (p *inMemoryProfile) Set(ctx context.Context, key, value string) error {
	s := p.storage
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStorageClosed
	}
	entries, ok := s.profiles[p.profileID]
	if !ok {
		entries = make(map[string]string)
		s.profiles[p.profileID] = entries
	}
	entries[key] = value
	return nil
}

func (p *inMemoryProfile) Delete(ctx context.Context, key string) error {
	s := p.storage
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStorageClosed
	}
	entries, ok := s.profiles[p.profileID]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(s.profiles, p.profileID)
	}
	return nil
}

// Ensure InMemoryProfileStorage implements ProfileStorage
var _ shared.ProfileStorage = (*InMemoryProfileStorage)(nil)
