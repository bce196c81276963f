package usage

import "context"

type store interface {
	Get(ctx context.Context, clientID string) (Counter, error)
	Increment(ctx context.Context, clientID string) (Counter, error)
	Reset(ctx context.Context, clientID string) (Counter, error)
}

// Service manages usage counters via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the current counter for a client, initializing a fresh window
// if absent or expired.
func (s *Service) Get(ctx context.Context, clientID string) (Counter, error) {
	return s.store.Get(ctx, clientID)
}

// Record increments the client's counter by one. No limit is enforced here.
func (s *Service) Record(ctx context.Context, clientID string) (Counter, error) {
	return s.store.Increment(ctx, clientID)
}

// Reset sets the counter to zero and restarts the window.
func (s *Service) Reset(ctx context.Context, clientID string) (Counter, error) {
	return s.store.Reset(ctx, clientID)
}
