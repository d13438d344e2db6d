package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/mocks"
)

func TestPaymentServiceImpl_Charge(t *testing.T) {
	tests := []struct {
		name          string
		purchaseType  string
		setupMocks    func(*mocks.MockPaymentGateway, *mocks.MockPaymentRepository, *mocks.MockProviderRepository, *mocks.MockEntitlementService)
		expectedError error
		wantAmount    float64
		wantReference string
	}{
		{
			name:         "activation purchase",
			purchaseType: domain.PaymentTypeActivation,
			setupMocks: func(gw *mocks.MockPaymentGateway, pr *mocks.MockPaymentRepository, prov *mocks.MockProviderRepository, ent *mocks.MockEntitlementService) {
				prov.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
					return &domain.Provider{ID: 3, UserID: 9}, nil
				}
			},
			wantAmount:    1.99,
			wantReference: "PROV_3_ACTIVATION",
		},
		{
			name:         "featured purchase",
			purchaseType: domain.PaymentTypeFeatured,
			setupMocks: func(gw *mocks.MockPaymentGateway, pr *mocks.MockPaymentRepository, prov *mocks.MockProviderRepository, ent *mocks.MockEntitlementService) {
				prov.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
					return &domain.Provider{ID: 3, UserID: 9}, nil
				}
			},
			wantAmount:    19.90,
			wantReference: "PROV_3_FEATURED",
		},
		{
			name:          "unknown purchase type",
			purchaseType:  "PREMIUM",
			setupMocks:    func(*mocks.MockPaymentGateway, *mocks.MockPaymentRepository, *mocks.MockProviderRepository, *mocks.MockEntitlementService) {},
			expectedError: domain.ErrInvalidPayment,
		},
		{
			name:         "no provider for either id",
			purchaseType: domain.PaymentTypeActivation,
			setupMocks: func(gw *mocks.MockPaymentGateway, pr *mocks.MockPaymentRepository, prov *mocks.MockProviderRepository, ent *mocks.MockEntitlementService) {
				prov.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
					return nil, domain.ErrProviderNotFound
				}
				prov.FindByUserIDFunc = func(ctx context.Context, userID uint) (*domain.Provider, error) {
					return nil, domain.ErrProviderNotFound
				}
			},
			expectedError: domain.ErrProviderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockPaymentGateway()
			var gotAmount float64
			var gotReference string
			gateway.ChargeFunc = func(ctx context.Context, amount float64, description, reference string, form domain.ChargeRequest) (*domain.ChargeResult, error) {
				gotAmount = amount
				gotReference = reference
				return &domain.ChargeResult{ExternalID: "555", Status: domain.PaymentStatusApproved}, nil
			}
			paymentRepo := mocks.NewMockPaymentRepository()
			providerRepo := mocks.NewMockProviderRepository()
			entitlementSvc := mocks.NewMockEntitlementService()
			tt.setupMocks(gateway, paymentRepo, providerRepo, entitlementSvc)

			svc := NewPaymentService(gateway, paymentRepo, providerRepo, entitlementSvc)
			result, err := svc.Charge(context.Background(), 3, tt.purchaseType, domain.ChargeRequest{PaymentMethodID: "pix"})

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ExternalID != "555" {
				t.Errorf("expected external id 555, got %s", result.ExternalID)
			}
			if gotAmount != tt.wantAmount {
				t.Errorf("expected amount %.2f, got %.2f", tt.wantAmount, gotAmount)
			}
			if gotReference != tt.wantReference {
				t.Errorf("expected reference %s, got %s", tt.wantReference, gotReference)
			}
		})
	}
}

func TestPaymentServiceImpl_Charge_FallsBackToUserID(t *testing.T) {
	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		return nil, domain.ErrProviderNotFound
	}
	providerRepo.FindByUserIDFunc = func(ctx context.Context, userID uint) (*domain.Provider, error) {
		if userID != 9 {
			t.Errorf("expected user id fallback with 9, got %d", userID)
		}
		return &domain.Provider{ID: 3, UserID: 9}, nil
	}

	var stored *domain.Payment
	paymentRepo := mocks.NewMockPaymentRepository()
	paymentRepo.CreateFunc = func(ctx context.Context, payment *domain.Payment) error {
		stored = payment
		return nil
	}

	svc := NewPaymentService(mocks.NewMockPaymentGateway(), paymentRepo, providerRepo, mocks.NewMockEntitlementService())
	if _, err := svc.Charge(context.Background(), 9, domain.PaymentTypeActivation, domain.ChargeRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("payment row was not persisted")
	}
	if stored.ProviderID != 3 {
		t.Errorf("payment must reference the provider id, got %d", stored.ProviderID)
	}
}

func TestPaymentServiceImpl_Charge_RowIsPendingBeforeOutcome(t *testing.T) {
	// The stored row must start pending so the conditional approved
	// transition can fire exactly once for the real gateway status.
	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		return &domain.Provider{ID: 3, UserID: 9}, nil
	}

	var storedStatus string
	paymentRepo := mocks.NewMockPaymentRepository()
	paymentRepo.CreateFunc = func(ctx context.Context, payment *domain.Payment) error {
		storedStatus = payment.Status
		return nil
	}

	var outcomeStatus string
	entitlementSvc := mocks.NewMockEntitlementService()
	entitlementSvc.ApplyPaymentOutcomeFunc = func(ctx context.Context, payment *domain.Payment) error {
		outcomeStatus = payment.Status
		return nil
	}

	svc := NewPaymentService(mocks.NewMockPaymentGateway(), paymentRepo, providerRepo, entitlementSvc)
	if _, err := svc.Charge(context.Background(), 3, domain.PaymentTypeFeatured, domain.ChargeRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedStatus != domain.PaymentStatusPending {
		t.Errorf("expected stored status pending, got %s", storedStatus)
	}
	if outcomeStatus != domain.PaymentStatusApproved {
		t.Errorf("expected outcome applied with approved, got %s", outcomeStatus)
	}
}

func TestPaymentServiceImpl_SyncFromGateway(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockPaymentGateway, *mocks.MockPaymentRepository, *mocks.MockEntitlementService)
		expectedError error
	}{
		{
			name: "successful sync",
			setupMocks: func(gw *mocks.MockPaymentGateway, pr *mocks.MockPaymentRepository, ent *mocks.MockEntitlementService) {
				pr.FindByExternalIDFunc = func(ctx context.Context, externalID string) (*domain.Payment, error) {
					return &domain.Payment{ExternalID: externalID, Status: domain.PaymentStatusPending, Type: domain.PaymentTypeActivation, ProviderID: 1}, nil
				}
				gw.FetchStatusFunc = func(ctx context.Context, externalID string) (string, error) {
					return domain.PaymentStatusApproved, nil
				}
			},
		},
		{
			name: "unknown external id",
			setupMocks: func(gw *mocks.MockPaymentGateway, pr *mocks.MockPaymentRepository, ent *mocks.MockEntitlementService) {
				pr.FindByExternalIDFunc = func(ctx context.Context, externalID string) (*domain.Payment, error) {
					return nil, domain.ErrPaymentNotFound
				}
			},
			expectedError: domain.ErrPaymentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockPaymentGateway()
			paymentRepo := mocks.NewMockPaymentRepository()
			entitlementSvc := mocks.NewMockEntitlementService()
			var applied *domain.Payment
			entitlementSvc.ApplyPaymentOutcomeFunc = func(ctx context.Context, payment *domain.Payment) error {
				applied = payment
				return nil
			}
			tt.setupMocks(gateway, paymentRepo, entitlementSvc)

			svc := NewPaymentService(gateway, paymentRepo, mocks.NewMockProviderRepository(), entitlementSvc)
			err := svc.SyncFromGateway(context.Background(), "777")

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if applied == nil || applied.Status != domain.PaymentStatusApproved {
				t.Errorf("expected the fetched status handed to the entitlement engine, got %+v", applied)
			}
		})
	}
}
