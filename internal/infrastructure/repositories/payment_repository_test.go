package repositories

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

func TestPaymentRepositoryImpl_TransitionToApproved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	payment := &domain.Payment{
		ExternalID: "mp_123",
		Status:     domain.PaymentStatusPending,
		Amount:     19.90,
		ProviderID: 1,
		Type:       domain.PaymentTypeFeatured,
	}
	if err := repo.Create(ctx, payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transitioned, err := repo.TransitionToApproved(ctx, "mp_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !transitioned {
		t.Error("first transition must report true")
	}

	// A redelivered webhook finds the row already approved.
	transitioned, err = repo.TransitionToApproved(ctx, "mp_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transitioned {
		t.Error("second transition must report false")
	}

	stored, err := repo.FindByExternalID(ctx, "mp_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.PaymentStatusApproved {
		t.Errorf("expected approved, got %s", stored.Status)
	}
}

func TestPaymentRepositoryImpl_TransitionToApproved_UnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)

	transitioned, err := repo.TransitionToApproved(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transitioned {
		t.Error("unknown external id must not report a transition")
	}
}

func TestPaymentRepositoryImpl_FindByExternalID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	if _, err := repo.FindByExternalID(ctx, "nope"); !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Errorf("expected ErrPaymentNotFound, got %v", err)
	}

	payment := &domain.Payment{ExternalID: "mp_9", Status: domain.PaymentStatusPending, Amount: 1.99, Type: domain.PaymentTypeActivation}
	if err := repo.Create(ctx, payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByExternalID(ctx, "mp_9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Amount != 1.99 || found.Type != domain.PaymentTypeActivation {
		t.Errorf("unexpected payment: %+v", found)
	}
}

func TestPaymentRepositoryImpl_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	payment := &domain.Payment{ExternalID: "mp_5", Status: domain.PaymentStatusPending, Amount: 19.90}
	if err := repo.Create(ctx, payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "mp_5", domain.PaymentStatusRejected); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.FindByExternalID(ctx, "mp_5")
	if stored.Status != domain.PaymentStatusRejected {
		t.Errorf("expected rejected, got %s", stored.Status)
	}
}

func TestPaymentRepositoryImpl_UpdateStatus_NeverRegressesApproved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	payment := &domain.Payment{ExternalID: "mp_6", Status: domain.PaymentStatusPending, Amount: 1.99}
	if err := repo.Create(ctx, payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, err := repo.TransitionToApproved(ctx, "mp_6"); err != nil || !ok {
		t.Fatalf("expected the approval transition, ok=%v err=%v", ok, err)
	}

	// An out-of-order gateway status must not reopen the approval gate,
	// or a redelivered approval would grant the entitlement twice.
	if err := repo.UpdateStatus(ctx, "mp_6", domain.PaymentStatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.FindByExternalID(ctx, "mp_6")
	if stored.Status != domain.PaymentStatusApproved {
		t.Errorf("approved is terminal, got %s", stored.Status)
	}
	if ok, err := repo.TransitionToApproved(ctx, "mp_6"); err != nil || ok {
		t.Errorf("a second approval must not transition again, ok=%v err=%v", ok, err)
	}
}

func TestPaymentRepositoryImpl_SumApproved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	seed := []domain.Payment{
		{ExternalID: "a", Status: domain.PaymentStatusApproved, Amount: 19.90},
		{ExternalID: "b", Status: domain.PaymentStatusApproved, Amount: 1.99},
		{ExternalID: "c", Status: domain.PaymentStatusPending, Amount: 19.90},
		{ExternalID: "d", Status: domain.PaymentStatusRejected, Amount: 19.90},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	total, err := repo.SumApproved(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(total-21.89) > 1e-9 {
		t.Errorf("expected 21.89, got %v", total)
	}
}

func TestPaymentRepositoryImpl_SumApproved_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db)

	total, err := repo.SumApproved(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 with no payments, got %v", total)
	}
}
