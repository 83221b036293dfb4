package customer

import (
	"context"
	"strings"
	"sync"
)

// InMemoryStore serves customer records from a map. Seeded for development
// and tests; production uses the Postgres store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemoryStore(records ...Record) *InMemoryStore {
	s := &InMemoryStore{records: make(map[string]Record, len(records))}
	for _, r := range records {
		s.records[strings.ToUpper(r.PAN)] = r
	}
	return s
}

// SeededStore returns an in-memory store with a small demo book of accounts.
func SeededStore() *InMemoryStore {
	return NewInMemoryStore(
		Record{
			PAN:             "ABCDE1234F",
			FullName:        "Rahul Sharma",
			DOB:             "1991-04-12",
			Email:           "rahul.sharma@example.com",
			Phone:           "9876543210",
			Address:         "221B MG Road, Bengaluru, Karnataka 560001",
			AccountNumber:   "104592837465",
			IFSCCode:        "HDFC0001234",
			ProfileImageURL: "/profiles/abcde1234f.jpg",
		},
		Record{
			PAN:             "FGHIJ5678K",
			FullName:        "Priya Nair",
			DOB:             "1988-11-02",
			Email:           "priya.nair@example.com",
			Phone:           "9123456780",
			Address:         "14 Marine Drive, Kochi, Kerala 682031",
			AccountNumber:   "550012349876",
			IFSCCode:        "ICIC0004321",
			ProfileImageURL: "/profiles/fghij5678k.jpg",
		},
	)
}

func (s *InMemoryStore) FindByPAN(_ context.Context, pan string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[strings.ToUpper(strings.TrimSpace(pan))]; ok {
		return r, nil
	}
	return Record{}, ErrNotFound
}
