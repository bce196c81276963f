package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, clientID string) (Counter, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Counter{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	c, err := s.lockAndEnsure(ctx, tx, clientID)
	if err != nil {
		return Counter{}, err
	}
	if err = tx.Commit(); err != nil {
		return Counter{}, err
	}
	return c, nil
}

func (s *pgStore) Increment(ctx context.Context, clientID string) (Counter, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Counter{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	c, err := s.lockAndEnsure(ctx, tx, clientID)
	if err != nil {
		return Counter{}, err
	}
	c.Count++
	if _, err = tx.ExecContext(ctx, `
UPDATE usage_counters SET count = $1, updated_at = now() WHERE client_id = $2`, c.Count, clientID); err != nil {
		return Counter{}, err
	}
	if err = tx.Commit(); err != nil {
		return Counter{}, err
	}
	return c, nil
}

func (s *pgStore) Reset(ctx context.Context, clientID string) (Counter, error) {
	windowEndsAt := time.Now().UTC().Add(Window)
	if _, err := s.DB.ExecContext(ctx, `
INSERT INTO usage_counters (client_id, count, window_ends_at)
VALUES ($1, 0, $2)
ON CONFLICT (client_id) DO UPDATE SET count = 0, window_ends_at = EXCLUDED.window_ends_at, updated_at = now()`,
		clientID, windowEndsAt); err != nil {
		return Counter{}, err
	}
	return Counter{ClientID: clientID, Count: 0, WindowEndsAt: windowEndsAt}, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, clientID string) (Counter, error) {
	c := Counter{ClientID: clientID}
	row := tx.QueryRowContext(ctx, `
SELECT count, window_ends_at FROM usage_counters WHERE client_id = $1 FOR UPDATE`, clientID)
	err := row.Scan(&c.Count, &c.WindowEndsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Count = 0
			c.WindowEndsAt = time.Now().UTC().Add(Window)
			if _, err = tx.ExecContext(ctx, `
INSERT INTO usage_counters (client_id, count, window_ends_at) VALUES ($1, $2, $3)`,
				clientID, c.Count, c.WindowEndsAt); err != nil {
				return Counter{}, err
			}
			return c, nil
		}
		return Counter{}, err
	}

	now := time.Now().UTC()
	if !now.Before(c.WindowEndsAt) {
		c.Count = 0
		c.WindowEndsAt = now.Add(Window)
		if _, err = tx.ExecContext(ctx, `
UPDATE usage_counters SET count = $1, window_ends_at = $2, updated_at = now() WHERE client_id = $3`,
			c.Count, c.WindowEndsAt, clientID); err != nil {
			return Counter{}, err
		}
	}
	return c, nil
}
