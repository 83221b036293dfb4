package offer

import (
	"context"
	"sync"
)

// InMemoryStore keeps offers in a mutex-guarded map. Suitable for tests and
// single-process deployments.
type InMemoryStore struct {
	mu     sync.Mutex
	offers map[string]Offer
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{offers: make(map[string]Offer)}
}

func (s *InMemoryStore) Create(_ context.Context, o Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[o.Token] = o
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, token string) (Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[token]
	if !ok {
		return Offer{}, errOfferNotFound
	}
	return o, nil
}

// Consume marks the offer redeemed under the lock, so only one caller can
// observe the unconsumed state.
func (s *InMemoryStore) Consume(_ context.Context, token string) (Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[token]
	if !ok {
		return Offer{}, errOfferNotFound
	}
	if o.Consumed {
		return Offer{}, errOfferConsumed
	}
	o.Consumed = true
	s.offers[token] = o
	return o, nil
}
