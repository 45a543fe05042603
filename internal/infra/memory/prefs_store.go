package memory

import (
	"context"
	"sync"
)

// PrefsStore is an in-memory key-value store for user preferences.
type PrefsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewPrefsStore() *PrefsStore {
	return &PrefsStore{values: make(map[string]string)}
}

func (s *PrefsStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *PrefsStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
