package usage

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]Counter
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]Counter)}
}

func (s *memoryStore) Get(ctx context.Context, clientID string) (Counter, error) {
	if err := ctx.Err(); err != nil {
		return Counter{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(clientID), nil
}

func (s *memoryStore) Increment(ctx context.Context, clientID string) (Counter, error) {
	if err := ctx.Err(); err != nil {
		return Counter{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLocked(clientID)
	c.Count++
	s.data[clientID] = c
	return c, nil
}

func (s *memoryStore) Reset(ctx context.Context, clientID string) (Counter, error) {
	if err := ctx.Err(); err != nil {
		return Counter{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Counter{
		ClientID:     clientID,
		Count:        0,
		WindowEndsAt: time.Now().UTC().Add(Window),
	}
	s.data[clientID] = c
	return c, nil
}

// ensureLocked returns the client's counter, starting a fresh window if it
// is absent or expired. Caller holds the lock.
func (s *memoryStore) ensureLocked(clientID string) Counter {
	now := time.Now().UTC()
	c, ok := s.data[clientID]
	if !ok || !now.Before(c.WindowEndsAt) {
		c = Counter{
			ClientID:     clientID,
			Count:        0,
			WindowEndsAt: now.Add(Window),
		}
	}
	s.data[clientID] = c
	return c
}
