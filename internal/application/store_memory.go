package application

import (
	"context"
	"strings"
	"sync"
)

// InMemoryStore keeps applications in submission order per PAN.
type InMemoryStore struct {
	mu    sync.RWMutex
	byPAN map[string][]LoanApplication
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byPAN: make(map[string][]LoanApplication)}
}

func (s *InMemoryStore) Append(_ context.Context, app LoanApplication) error {
	key := normalizePAN(app.PAN)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPAN[key] = append(s.byPAN[key], app)
	return nil
}

func (s *InMemoryStore) LatestByPAN(_ context.Context, pan string) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	apps := s.byPAN[normalizePAN(pan)]
	if len(apps) == 0 {
		return Status{}, errNoApplications
	}
	latest := apps[0]
	for _, app := range apps[1:] {
		if app.SubmissionDate.After(latest.SubmissionDate) {
			latest = app
		}
	}
	return Status{
		ApplicationID:  latest.ApplicationID,
		Status:         latest.Status,
		SubmissionDate: latest.SubmissionDate,
	}, nil
}

func normalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}
