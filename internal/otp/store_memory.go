package otp

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps live codes in a mutex-guarded map. Single-process only;
// the Redis store covers multi-instance deployments. Expired records are
// evicted lazily on the next touch of their key; an expired record can
// linger physically but can never verify.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

func (s *InMemoryStore) Put(_ context.Context, identifier string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[identifier] = rec
	return nil
}

func (s *InMemoryStore) VerifyAndConsume(_ context.Context, identifier, code string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[identifier]
	if !ok {
		return false, nil
	}
	if now.After(rec.Expiry) {
		delete(s.records, identifier)
		return false, nil
	}
	if rec.Code != code {
		return false, nil
	}
	delete(s.records, identifier)
	return true, nil
}
