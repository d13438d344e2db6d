package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// PaymentRepositoryImpl implements domain.PaymentRepository using GORM
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domain.PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

// Create implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *domain.Payment) error {
	dbPayment := paymentToDB(payment)
	if err := r.db.WithContext(ctx).Create(dbPayment).Error; err != nil {
		return err
	}
	payment.ID = dbPayment.ID
	return nil
}

// FindByExternalID implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) FindByExternalID(ctx context.Context, externalID string) (*domain.Payment, error) {
	var dbPayment DBPayment
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&dbPayment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return paymentToDomain(&dbPayment), nil
}

// TransitionToApproved implements domain.PaymentRepository. The WHERE clause
// excludes already-approved rows, so under at-least-once webhook delivery
// exactly one caller observes the transition and triggers the grant.
func (r *PaymentRepositoryImpl) TransitionToApproved(ctx context.Context, externalID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBPayment{}).
		Where("external_id = ? AND status <> ?", externalID, domain.PaymentStatusApproved).
		Update("status", domain.PaymentStatusApproved)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateStatus implements domain.PaymentRepository for non-approved status
// sync from the gateway. Approved is terminal here: a late or out-of-order
// gateway status never regresses an approved row, which would reopen the
// TransitionToApproved gate and let a redelivered approval grant twice.
func (r *PaymentRepositoryImpl) UpdateStatus(ctx context.Context, externalID, status string) error {
	return r.db.WithContext(ctx).Model(&DBPayment{}).
		Where("external_id = ? AND status <> ?", externalID, domain.PaymentStatusApproved).
		Update("status", status).Error
}

// SumApproved implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) SumApproved(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&DBPayment{}).
		Where("status = ?", domain.PaymentStatusApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func paymentToDB(payment *domain.Payment) *DBPayment {
	return &DBPayment{
		ID:         payment.ID,
		ExternalID: payment.ExternalID,
		Status:     payment.Status,
		Amount:     payment.Amount,
		Method:     payment.Method,
		ProviderID: payment.ProviderID,
		Type:       payment.Type,
	}
}

func paymentToDomain(dbPayment *DBPayment) *domain.Payment {
	return &domain.Payment{
		ID:         dbPayment.ID,
		ExternalID: dbPayment.ExternalID,
		Status:     dbPayment.Status,
		Amount:     dbPayment.Amount,
		Method:     dbPayment.Method,
		ProviderID: dbPayment.ProviderID,
		Type:       dbPayment.Type,
		CreatedAt:  dbPayment.CreatedAt,
		UpdatedAt:  dbPayment.UpdatedAt,
	}
}
