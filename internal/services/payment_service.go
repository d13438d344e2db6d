package services

import (
	"context"
	"fmt"
	"log"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// Price table in decimal currency units
var purchasePrices = map[string]float64{
	domain.PaymentTypeFeatured:   19.90,
	domain.PaymentTypeActivation: 1.99,
}

// PaymentServiceImpl implements domain.PaymentService. It fronts the gateway,
// persists one Payment row per attempt keyed by the gateway's external id and
// hands approved outcomes to the entitlement engine.
type PaymentServiceImpl struct {
	gateway        domain.PaymentGateway
	paymentRepo    domain.PaymentRepository
	providerRepo   domain.ProviderRepository
	entitlementSvc domain.EntitlementService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	gateway domain.PaymentGateway,
	paymentRepo domain.PaymentRepository,
	providerRepo domain.ProviderRepository,
	entitlementSvc domain.EntitlementService,
) domain.PaymentService {
	return &PaymentServiceImpl{
		gateway:        gateway,
		paymentRepo:    paymentRepo,
		providerRepo:   providerRepo,
		entitlementSvc: entitlementSvc,
	}
}

// Charge implements domain.PaymentService. Callers may pass either the
// provider id or the owning user's id; the frontend is loose about which one
// it sends. The Payment row is created as pending and then advanced through
// the same conditional transition the webhook path uses, so either arrival
// order applies the grant exactly once.
func (s *PaymentServiceImpl) Charge(ctx context.Context, providerOrUserID uint, purchaseType string, form domain.ChargeRequest) (*domain.ChargeResult, error) {
	if purchaseType != domain.PaymentTypeActivation && purchaseType != domain.PaymentTypeFeatured {
		return nil, domain.ErrInvalidPayment
	}

	provider, err := s.providerRepo.FindByID(ctx, providerOrUserID)
	if err != nil {
		provider, err = s.providerRepo.FindByUserID(ctx, providerOrUserID)
		if err != nil {
			return nil, domain.ErrProviderNotFound
		}
	}

	amount := purchasePrices[purchaseType]
	description := "Upaon Services - Destaque no Site"
	if purchaseType == domain.PaymentTypeActivation {
		description = "Upaon Services - Ativação de Conta"
	}
	reference := fmt.Sprintf("PROV_%d_%s", provider.ID, purchaseType)

	result, err := s.gateway.Charge(ctx, amount, description, reference, form)
	if err != nil {
		return nil, fmt.Errorf("charge failed: %w", err)
	}

	log.Printf("PAYMENT_CHARGED: external_id=%s status=%s detail=%s",
		result.ExternalID, result.Status, result.StatusDetail)

	payment := &domain.Payment{
		ExternalID: result.ExternalID,
		Status:     domain.PaymentStatusPending,
		Amount:     amount,
		Method:     form.PaymentMethodID,
		ProviderID: provider.ID,
		Type:       purchaseType,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	payment.Status = result.Status
	if err := s.entitlementSvc.ApplyPaymentOutcome(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to apply payment outcome: %w", err)
	}

	return result, nil
}

// SyncFromGateway implements domain.PaymentService. Called from the webhook
// handler; delivery is at least once and may race the synchronous response.
func (s *PaymentServiceImpl) SyncFromGateway(ctx context.Context, externalID string) error {
	payment, err := s.paymentRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	status, err := s.gateway.FetchStatus(ctx, externalID)
	if err != nil {
		return fmt.Errorf("failed to fetch payment status: %w", err)
	}

	payment.Status = status
	return s.entitlementSvc.ApplyPaymentOutcome(ctx, payment)
}
