package usage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreIncrementExistingCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	windowEndsAt := time.Now().UTC().Add(Window)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count, window_ends_at FROM usage_counters").
		WithArgs("10.0.0.1").
		WillReturnRows(sqlmock.NewRows([]string{"count", "window_ends_at"}).AddRow(1, windowEndsAt))
	mock.ExpectExec("UPDATE usage_counters SET count").
		WithArgs(2, "10.0.0.1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPGStore(db)
	c, err := store.Increment(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if c.Count != 2 {
		t.Fatalf("expected count 2, got %d", c.Count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreIncrementInsertsMissingCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count, window_ends_at FROM usage_counters").
		WithArgs("10.0.0.9").
		WillReturnRows(sqlmock.NewRows([]string{"count", "window_ends_at"}))
	mock.ExpectExec("INSERT INTO usage_counters").
		WithArgs("10.0.0.9", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE usage_counters SET count").
		WithArgs(1, "10.0.0.9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPGStore(db)
	c, err := store.Increment(context.Background(), "10.0.0.9")
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if c.Count != 1 {
		t.Fatalf("expected count 1, got %d", c.Count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGetRestartsExpiredWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	expired := time.Now().UTC().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count, window_ends_at FROM usage_counters").
		WithArgs("10.0.0.1").
		WillReturnRows(sqlmock.NewRows([]string{"count", "window_ends_at"}).AddRow(3, expired))
	mock.ExpectExec("UPDATE usage_counters SET count").
		WithArgs(0, sqlmock.AnyArg(), "10.0.0.1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPGStore(db)
	c, err := store.Get(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Count != 0 {
		t.Fatalf("expected count 0 after expiry, got %d", c.Count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreResetUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO usage_counters").
		WithArgs("10.0.0.1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	c, err := store.Reset(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.Count != 0 {
		t.Fatalf("expected count 0, got %d", c.Count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
