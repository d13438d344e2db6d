package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/mocks"
)

func TestExtendWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no current expiry", func(t *testing.T) {
		got := extendWindow(now, nil, false)
		want := now.Add(EntitlementWindow)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("live expiry in the future stacks", func(t *testing.T) {
		current := now.Add(10 * 24 * time.Hour)
		got := extendWindow(now, &current, true)
		want := current.Add(EntitlementWindow)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("lapsed expiry restarts from now", func(t *testing.T) {
		current := now.Add(-24 * time.Hour)
		got := extendWindow(now, &current, true)
		want := now.Add(EntitlementWindow)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("revoked window does not stack", func(t *testing.T) {
		current := now.Add(20 * 24 * time.Hour)
		got := extendWindow(now, &current, false)
		want := now.Add(EntitlementWindow)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestEntitlementServiceImpl_GrantActivation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		return &domain.Provider{ID: 1, UserID: 5}, nil
	}
	var gotFields map[string]interface{}
	providerRepo.SetEntitlementFunc = func(ctx context.Context, providerID uint, fields map[string]interface{}) error {
		gotFields = fields
		return nil
	}

	userRepo := mocks.NewMockUserRepository()
	var mirroredUser uint
	var mirroredFlag bool
	userRepo.SetActivatedFunc = func(ctx context.Context, userID uint, activated bool) error {
		mirroredUser = userID
		mirroredFlag = activated
		return nil
	}

	svc := NewEntitlementService(providerRepo, userRepo, mocks.NewMockPaymentRepository(), mocks.NewMockNotificationSender())
	if err := svc.GrantActivation(context.Background(), 1, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotFields["is_active"] != true {
		t.Error("expected is_active to be set")
	}
	until, ok := gotFields["activated_until"].(time.Time)
	if !ok || !until.Equal(now.Add(EntitlementWindow)) {
		t.Errorf("expected activated_until %v, got %v", now.Add(EntitlementWindow), gotFields["activated_until"])
	}
	if mirroredUser != 5 || !mirroredFlag {
		t.Errorf("expected user 5 mirrored active, got user=%d flag=%v", mirroredUser, mirroredFlag)
	}
}

func TestEntitlementServiceImpl_GrantFeature_StacksRemainingDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	remaining := now.Add(7 * 24 * time.Hour)

	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		return &domain.Provider{ID: 1, UserID: 5, IsFeatured: true, FeaturedUntil: &remaining}, nil
	}
	var gotFields map[string]interface{}
	providerRepo.SetEntitlementFunc = func(ctx context.Context, providerID uint, fields map[string]interface{}) error {
		gotFields = fields
		return nil
	}

	svc := NewEntitlementService(providerRepo, mocks.NewMockUserRepository(), mocks.NewMockPaymentRepository(), mocks.NewMockNotificationSender())
	if err := svc.GrantFeature(context.Background(), 1, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	until, ok := gotFields["featured_until"].(time.Time)
	if !ok || !until.Equal(remaining.Add(EntitlementWindow)) {
		t.Errorf("expected featured_until %v, got %v", remaining.Add(EntitlementWindow), gotFields["featured_until"])
	}
}

func TestEntitlementServiceImpl_GrantFeature_IgnoresRevokedWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	revoked := now.Add(20 * 24 * time.Hour)

	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		// Flag already revoked, timestamp left behind by an earlier sweep.
		return &domain.Provider{ID: 1, UserID: 5, IsFeatured: false, FeaturedUntil: &revoked}, nil
	}
	var gotFields map[string]interface{}
	providerRepo.SetEntitlementFunc = func(ctx context.Context, providerID uint, fields map[string]interface{}) error {
		gotFields = fields
		return nil
	}

	svc := NewEntitlementService(providerRepo, mocks.NewMockUserRepository(), mocks.NewMockPaymentRepository(), mocks.NewMockNotificationSender())
	if err := svc.GrantFeature(context.Background(), 1, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	until, ok := gotFields["featured_until"].(time.Time)
	if !ok || !until.Equal(now.Add(EntitlementWindow)) {
		t.Errorf("expected a fresh window until %v, got %v", now.Add(EntitlementWindow), gotFields["featured_until"])
	}
}

func TestEntitlementServiceImpl_ApplyPaymentOutcome(t *testing.T) {
	tests := []struct {
		name             string
		payment          *domain.Payment
		transitioned     bool
		wantGrant        bool
		wantStatusUpdate bool
	}{
		{
			name:         "approved activation grants once",
			payment:      &domain.Payment{ExternalID: "123", Status: domain.PaymentStatusApproved, Type: domain.PaymentTypeActivation, ProviderID: 1},
			transitioned: true,
			wantGrant:    true,
		},
		{
			name:         "redelivered approval is a no-op",
			payment:      &domain.Payment{ExternalID: "123", Status: domain.PaymentStatusApproved, Type: domain.PaymentTypeActivation, ProviderID: 1},
			transitioned: false,
			wantGrant:    false,
		},
		{
			name:             "rejected payment only records status",
			payment:          &domain.Payment{ExternalID: "123", Status: domain.PaymentStatusRejected, Type: domain.PaymentTypeFeatured, ProviderID: 1},
			wantStatusUpdate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerRepo := mocks.NewMockProviderRepository()
			providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
				return &domain.Provider{ID: 1, UserID: 5}, nil
			}
			granted := false
			providerRepo.SetEntitlementFunc = func(ctx context.Context, providerID uint, fields map[string]interface{}) error {
				granted = true
				return nil
			}

			paymentRepo := mocks.NewMockPaymentRepository()
			paymentRepo.TransitionToApprovedFunc = func(ctx context.Context, externalID string) (bool, error) {
				return tt.transitioned, nil
			}
			statusUpdated := false
			paymentRepo.UpdateStatusFunc = func(ctx context.Context, externalID, status string) error {
				statusUpdated = true
				return nil
			}

			svc := NewEntitlementService(providerRepo, mocks.NewMockUserRepository(), paymentRepo, mocks.NewMockNotificationSender())
			if err := svc.ApplyPaymentOutcome(context.Background(), tt.payment); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if granted != tt.wantGrant {
				t.Errorf("grant applied=%v, want %v", granted, tt.wantGrant)
			}
			if statusUpdated != tt.wantStatusUpdate {
				t.Errorf("status updated=%v, want %v", statusUpdated, tt.wantStatusUpdate)
			}
		})
	}
}

func TestEntitlementServiceImpl_ApplyPaymentOutcome_FeaturedType(t *testing.T) {
	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		return &domain.Provider{ID: 1, UserID: 5}, nil
	}
	var gotFields map[string]interface{}
	providerRepo.SetEntitlementFunc = func(ctx context.Context, providerID uint, fields map[string]interface{}) error {
		gotFields = fields
		return nil
	}

	svc := NewEntitlementService(providerRepo, mocks.NewMockUserRepository(), mocks.NewMockPaymentRepository(), mocks.NewMockNotificationSender())
	payment := &domain.Payment{ExternalID: "9", Status: domain.PaymentStatusApproved, Type: domain.PaymentTypeFeatured, ProviderID: 1}
	if err := svc.ApplyPaymentOutcome(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFields["is_featured"] != true {
		t.Error("expected a featured grant for FEATURED payments")
	}
	if _, present := gotFields["is_active"]; present {
		t.Error("featured grant must not touch the activation flag")
	}
}

func TestEntitlementServiceImpl_SweepExpirations(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.ActivationsExpiringBetweenFunc = func(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
		return []domain.Provider{{ID: 1, UserID: 10}, {ID: 2, UserID: 20}}, nil
	}
	providerRepo.ExpireActivationsFunc = func(ctx context.Context, n time.Time) (int64, error) {
		return 2, nil
	}
	providerRepo.ExpireFeaturesFunc = func(ctx context.Context, n time.Time) (int64, error) {
		return 1, nil
	}

	userRepo := mocks.NewMockUserRepository()
	var cleared []uint
	userRepo.SetActivatedFunc = func(ctx context.Context, userID uint, activated bool) error {
		if activated {
			t.Errorf("sweep must clear the flag, set it for user %d", userID)
		}
		cleared = append(cleared, userID)
		// one mirror failing must not abort the sweep
		if userID == 10 {
			return errors.New("connection reset")
		}
		return nil
	}

	svc := NewEntitlementService(providerRepo, userRepo, mocks.NewMockPaymentRepository(), mocks.NewMockNotificationSender())
	summary, err := svc.SweepExpirations(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Deactivated != 2 {
		t.Errorf("expected 2 deactivated, got %d", summary.Deactivated)
	}
	if summary.Unfeatured != 1 {
		t.Errorf("expected 1 unfeatured, got %d", summary.Unfeatured)
	}
	if len(cleared) != 2 {
		t.Errorf("expected both user flags attempted, got %v", cleared)
	}
}

func TestEntitlementServiceImpl_SweepExpirations_SecondRunIsEmpty(t *testing.T) {
	now := time.Now()

	swept := false
	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.ExpireActivationsFunc = func(ctx context.Context, n time.Time) (int64, error) {
		if swept {
			return 0, nil
		}
		swept = true
		return 3, nil
	}

	svc := NewEntitlementService(providerRepo, mocks.NewMockUserRepository(), mocks.NewMockPaymentRepository(), mocks.NewMockNotificationSender())

	first, err := svc.SweepExpirations(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SweepExpirations(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Deactivated != 3 || second.Deactivated != 0 {
		t.Errorf("expected 3 then 0 deactivations, got %d then %d", first.Deactivated, second.Deactivated)
	}
}

func TestEntitlementServiceImpl_NotifyUpcomingExpirations(t *testing.T) {
	now := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	soonActivation := now.Add(2 * 24 * time.Hour)
	soonFeature := now.Add(24 * time.Hour)

	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.ActivationsExpiringBetweenFunc = func(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
		if !from.Equal(now) || !to.Equal(now.Add(ActivationNoticeWindow)) {
			t.Errorf("unexpected activation window %v..%v", from, to)
		}
		return []domain.Provider{
			{ID: 1, UserID: 10, ActivatedUntil: &soonActivation, User: &domain.User{Email: "a@ex.com", Name: "Ana"}},
			{ID: 2, UserID: 20, ActivatedUntil: &soonActivation, User: &domain.User{Email: "b@ex.com", Name: "Bia"}},
			{ID: 3, UserID: 30, ActivatedUntil: &soonActivation}, // user not loaded, skipped
		}, nil
	}
	providerRepo.FeaturesExpiringBetweenFunc = func(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
		if !to.Equal(now.Add(FeatureNoticeWindow)) {
			t.Errorf("unexpected feature window end %v", to)
		}
		return []domain.Provider{
			{ID: 4, UserID: 40, FeaturedUntil: &soonFeature, User: &domain.User{Email: "c@ex.com", Name: "Caio"}},
		}, nil
	}

	sender := mocks.NewMockNotificationSender()
	var sentTo []string
	sender.SendEmailFunc = func(to, subject, body string) error {
		sentTo = append(sentTo, to)
		if to == "b@ex.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}

	svc := NewEntitlementService(providerRepo, mocks.NewMockUserRepository(), mocks.NewMockPaymentRepository(), sender)
	summary, err := svc.NotifyUpcomingExpirations(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Notified != 2 {
		t.Errorf("expected 2 notices sent, got %d", summary.Notified)
	}
	if summary.NotifyFailed != 1 {
		t.Errorf("expected 1 failed notice, got %d", summary.NotifyFailed)
	}
	if len(sentTo) != 3 {
		t.Errorf("expected 3 delivery attempts, got %v", sentTo)
	}
}
