package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// Entitlement windows
const (
	EntitlementWindow       = 30 * 24 * time.Hour
	ActivationNoticeWindow  = 5 * 24 * time.Hour
	FeatureNoticeWindow     = 3 * 24 * time.Hour
	notificationSendTimeout = 10 * time.Second
)

// EntitlementServiceImpl implements domain.EntitlementService. It owns the
// is_active/is_featured flags and their expiry timestamps; no other flow
// writes those columns.
type EntitlementServiceImpl struct {
	providerRepo domain.ProviderRepository
	userRepo     domain.UserRepository
	paymentRepo  domain.PaymentRepository
	sender       domain.NotificationSender
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(
	providerRepo domain.ProviderRepository,
	userRepo domain.UserRepository,
	paymentRepo domain.PaymentRepository,
	sender domain.NotificationSender,
) domain.EntitlementService {
	return &EntitlementServiceImpl{
		providerRepo: providerRepo,
		userRepo:     userRepo,
		paymentRepo:  paymentRepo,
		sender:       sender,
	}
}

// GrantActivation implements domain.EntitlementService. A paid grant extends
// the window from the later of now and the current expiry, so paying before
// expiry never loses remaining days. The user's convenience flag is mirrored.
func (s *EntitlementServiceImpl) GrantActivation(ctx context.Context, providerID uint, now time.Time) error {
	provider, err := s.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return err
	}

	until := extendWindow(now, provider.ActivatedUntil, provider.IsActive)
	err = s.providerRepo.SetEntitlement(ctx, providerID, map[string]interface{}{
		"is_active":       true,
		"activated_until": until,
	})
	if err != nil {
		return fmt.Errorf("failed to grant activation: %w", err)
	}

	if err := s.userRepo.SetActivated(ctx, provider.UserID, true); err != nil {
		return fmt.Errorf("failed to mirror activation flag: %w", err)
	}

	log.Printf("ACTIVATION_GRANTED: provider_id=%d until=%s", providerID, until.Format(time.RFC3339))
	return nil
}

// GrantFeature implements domain.EntitlementService
func (s *EntitlementServiceImpl) GrantFeature(ctx context.Context, providerID uint, now time.Time) error {
	provider, err := s.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return err
	}

	until := extendWindow(now, provider.FeaturedUntil, provider.IsFeatured)
	err = s.providerRepo.SetEntitlement(ctx, providerID, map[string]interface{}{
		"is_featured":    true,
		"featured_until": until,
	})
	if err != nil {
		return fmt.Errorf("failed to grant feature: %w", err)
	}

	log.Printf("FEATURE_GRANTED: provider_id=%d until=%s", providerID, until.Format(time.RFC3339))
	return nil
}

// ApplyPaymentOutcome implements domain.EntitlementService. The grant is
// gated on the conditional status transition of the stored Payment row keyed
// by external id, so re-delivered webhooks and the synchronous charge
// response cannot double-extend the window.
func (s *EntitlementServiceImpl) ApplyPaymentOutcome(ctx context.Context, payment *domain.Payment) error {
	if payment.Status != domain.PaymentStatusApproved {
		return s.paymentRepo.UpdateStatus(ctx, payment.ExternalID, payment.Status)
	}

	transitioned, err := s.paymentRepo.TransitionToApproved(ctx, payment.ExternalID)
	if err != nil {
		return fmt.Errorf("failed to transition payment %s: %w", payment.ExternalID, err)
	}
	if !transitioned {
		log.Printf("PAYMENT_ALREADY_APPLIED: external_id=%s", payment.ExternalID)
		return nil
	}

	now := time.Now()
	switch payment.Type {
	case domain.PaymentTypeFeatured:
		return s.GrantFeature(ctx, payment.ProviderID, now)
	default:
		return s.GrantActivation(ctx, payment.ProviderID, now)
	}
}

// SweepExpirations implements domain.EntitlementService. Expired activations
// revoke the featured flag as well; the bulk statements only match rows whose
// flag is still set, so the sweep is idempotent for a fixed now.
func (s *EntitlementServiceImpl) SweepExpirations(ctx context.Context, now time.Time) (*domain.SweepSummary, error) {
	summary := &domain.SweepSummary{}

	// Snapshot the providers about to lose activation so the user-level
	// convenience flag can be cleared after the bulk update.
	expiring, err := s.providerRepo.ActivationsExpiringBetween(ctx, time.Time{}, now.Add(-time.Nanosecond))
	if err != nil {
		return summary, fmt.Errorf("failed to list expiring activations: %w", err)
	}

	deactivated, err := s.providerRepo.ExpireActivations(ctx, now)
	if err != nil {
		return summary, fmt.Errorf("failed to expire activations: %w", err)
	}
	summary.Deactivated = deactivated

	for _, provider := range expiring {
		if err := s.userRepo.SetActivated(ctx, provider.UserID, false); err != nil {
			log.Printf("SWEEP_MIRROR_FAILED: provider_id=%d error=%v", provider.ID, err)
		}
	}

	unfeatured, err := s.providerRepo.ExpireFeatures(ctx, now)
	if err != nil {
		return summary, fmt.Errorf("failed to expire features: %w", err)
	}
	summary.Unfeatured = unfeatured

	log.Printf("SWEEP_COMPLETE: deactivated=%d unfeatured=%d", summary.Deactivated, summary.Unfeatured)
	return summary, nil
}

// NotifyUpcomingExpirations implements domain.EntitlementService. Each
// notice is sent with a bounded timeout; one failing recipient never aborts
// the batch.
func (s *EntitlementServiceImpl) NotifyUpcomingExpirations(ctx context.Context, now time.Time) (*domain.SweepSummary, error) {
	summary := &domain.SweepSummary{}

	notices, err := s.collectNotices(ctx, now)
	if err != nil {
		return summary, err
	}

	for _, notice := range notices {
		if err := s.sendNotice(notice); err != nil {
			summary.NotifyFailed++
			log.Printf("EXPIRY_NOTICE_FAILED: provider_id=%d kind=%s error=%v", notice.ProviderID, notice.Kind, err)
			continue
		}
		summary.Notified++
	}

	log.Printf("EXPIRY_NOTICES: sent=%d failed=%d", summary.Notified, summary.NotifyFailed)
	return summary, nil
}

func (s *EntitlementServiceImpl) collectNotices(ctx context.Context, now time.Time) ([]domain.ExpiryNotice, error) {
	var notices []domain.ExpiryNotice

	activations, err := s.providerRepo.ActivationsExpiringBetween(ctx, now, now.Add(ActivationNoticeWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming activation expirations: %w", err)
	}
	for _, provider := range activations {
		if provider.User == nil || provider.ActivatedUntil == nil {
			continue
		}
		notices = append(notices, domain.ExpiryNotice{
			ProviderID: provider.ID,
			Email:      provider.User.Email,
			Name:       provider.User.Name,
			Kind:       domain.NoticeActivationExpiry,
			ExpiresAt:  *provider.ActivatedUntil,
		})
	}

	features, err := s.providerRepo.FeaturesExpiringBetween(ctx, now, now.Add(FeatureNoticeWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming feature expirations: %w", err)
	}
	for _, provider := range features {
		if provider.User == nil || provider.FeaturedUntil == nil {
			continue
		}
		notices = append(notices, domain.ExpiryNotice{
			ProviderID: provider.ID,
			Email:      provider.User.Email,
			Name:       provider.User.Name,
			Kind:       domain.NoticeFeaturedExpiry,
			ExpiresAt:  *provider.FeaturedUntil,
		})
	}

	return notices, nil
}

// sendNotice delivers one expiry warning, treating a hung transport as a
// recoverable failure.
func (s *EntitlementServiceImpl) sendNotice(notice domain.ExpiryNotice) error {
	subject := "Sua ativação está prestes a expirar"
	what := "ativação"
	if notice.Kind == domain.NoticeFeaturedExpiry {
		subject = "Seu destaque está prestes a expirar"
		what = "destaque"
	}
	body := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <p>Olá %s,</p>
  <p>Sua %s expira em %s. Renove para continuar visível na plataforma.</p>
</div>`, notice.Name, what, notice.ExpiresAt.Format("02/01/2006"))

	done := make(chan error, 1)
	go func() { done <- s.sender.SendEmail(notice.Email, subject, body) }()

	select {
	case err := <-done:
		return err
	case <-time.After(notificationSendTimeout):
		return fmt.Errorf("notification send timed out after %s", notificationSendTimeout)
	}
}

// extendWindow returns the new expiry for a grant: thirty days past the
// current expiry when the entitlement is still live, thirty days from now
// otherwise. A timestamp left behind by a revocation carries no remaining
// days, so it only counts while the flag is set.
func extendWindow(now time.Time, current *time.Time, active bool) time.Time {
	base := now
	if active && current != nil && current.After(now) {
		base = *current
	}
	return base.Add(EntitlementWindow)
}
