package session

import (
	"context"
	"sync"
)

// PrefStore is the key/value store behind a browser session: profile
// fields and display preferences, grouped by scope (the user id).
type PrefStore interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope string, keys ...string) error
	Ping(ctx context.Context) error
}

type MemPrefs struct {
	mu sync.RWMutex
	m  map[string]map[string]string
}

func NewMemPrefs() *MemPrefs {
	return &MemPrefs{m: make(map[string]map[string]string)}
}

func (s *MemPrefs) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[scope][key]
	return v, ok, nil
}

func (s *MemPrefs) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, ok := s.m[scope]
	if !ok {
		kv = make(map[string]string)
		s.m[scope] = kv
	}
	kv[key] = value
	return nil
}

func (s *MemPrefs) Delete(_ context.Context, scope string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, ok := s.m[scope]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(kv, k)
	}
	if len(kv) == 0 {
		delete(s.m, scope)
	}
	return nil
}

func (s *MemPrefs) Ping(context.Context) error { return nil }
