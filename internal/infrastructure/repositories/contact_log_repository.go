package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// ContactLogRepositoryImpl implements domain.ContactLogRepository using GORM
type ContactLogRepositoryImpl struct {
	db *gorm.DB
}

// NewContactLogRepository creates a new contact log repository
func NewContactLogRepository(db *gorm.DB) domain.ContactLogRepository {
	return &ContactLogRepositoryImpl{db: db}
}

// Create implements domain.ContactLogRepository
func (r *ContactLogRepositoryImpl) Create(ctx context.Context, contactLog *domain.ContactLog) error {
	dbLog := &DBContactLog{
		ProviderID: contactLog.ProviderID,
		ClientID:   contactLog.ClientID,
	}
	if err := r.db.WithContext(ctx).Create(dbLog).Error; err != nil {
		return err
	}
	contactLog.ID = dbLog.ID
	contactLog.CreatedAt = dbLog.CreatedAt
	return nil
}

// CountByProvider implements domain.ContactLogRepository
func (r *ContactLogRepositoryImpl) CountByProvider(ctx context.Context, providerID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&DBContactLog{}).
		Where("provider_id = ?", providerID).
		Count(&total).Error
	return total, err
}

// Count implements domain.ContactLogRepository
func (r *ContactLogRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&DBContactLog{}).Count(&total).Error
	return total, err
}
