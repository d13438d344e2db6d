package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

func setupSessionRepo(t *testing.T) domain.SessionRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionRepository(client, time.Hour)
}

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	repo := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_1_123",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, "sess_1_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("unexpected session: %+v", found)
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryImpl_ExpiredSessionIsRemoved(t *testing.T) {
	repo := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_1_123",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_1_123"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}

	// The stale entry is purged on read.
	if _, err := repo.FindByID(ctx, "sess_1_123"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after purge, got %v", err)
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	repo := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{ID: "sess_1_123", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, "sess_1_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess_1_123"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
