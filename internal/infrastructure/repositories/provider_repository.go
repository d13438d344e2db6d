package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// ProviderRepositoryImpl implements domain.ProviderRepository using GORM
type ProviderRepositoryImpl struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *gorm.DB) domain.ProviderRepository {
	return &ProviderRepositoryImpl{db: db}
}

// Create implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) Create(ctx context.Context, provider *domain.Provider) error {
	dbProvider := providerToDB(provider)
	if err := r.db.WithContext(ctx).Create(dbProvider).Error; err != nil {
		return err
	}
	provider.ID = dbProvider.ID
	return nil
}

// FindByID implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Provider, error) {
	var dbProvider DBProvider
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&dbProvider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return providerToDomain(&dbProvider), nil
}

// FindByUserID implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.Provider, error) {
	var dbProvider DBProvider
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&dbProvider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return providerToDomain(&dbProvider), nil
}

// Search implements domain.ProviderRepository. Filters are AND-combined and
// case-insensitive; ordering is featured first, best rated next (providers
// without reviews last), newest first as the tie break.
func (r *ProviderRepositoryImpl) Search(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) ([]domain.Provider, int64, error) {
	tx := r.db.WithContext(ctx).Model(&DBProvider{}).
		Joins("JOIN users ON users.id = providers.user_id")

	if filters.Category != "" {
		tx = tx.Where("LOWER(providers.category) = LOWER(?)", filters.Category)
	}
	if filters.City != "" {
		tx = tx.Where("LOWER(users.city) LIKE LOWER(?)", "%"+filters.City+"%")
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		tx = tx.Where(
			"LOWER(providers.description) LIKE LOWER(?) OR LOWER(users.name) LIKE LOWER(?) OR LOWER(users.neighborhood) LIKE LOWER(?) OR LOWER(providers.category) LIKE LOWER(?)",
			like, like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbProviders []DBProvider
	err := tx.Preload("User").
		Order("providers.is_featured DESC").
		Order("providers.rating DESC NULLS LAST").
		Order("providers.created_at DESC").
		Limit(page.Limit).
		Offset((page.Page - 1) * page.Limit).
		Find(&dbProviders).Error
	if err != nil {
		return nil, 0, err
	}

	providers := make([]domain.Provider, 0, len(dbProviders))
	for i := range dbProviders {
		providers = append(providers, *providerToDomain(&dbProviders[i]))
	}
	return providers, total, nil
}

// Categories implements domain.ProviderRepository. Empty categories are
// filtered out; results come back in ascending order.
func (r *ProviderRepositoryImpl) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&DBProvider{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// SetEntitlement implements domain.ProviderRepository. Callers pass only the
// entitlement columns they own (is_active, activated_until, is_featured,
// featured_until).
func (r *ProviderRepositoryImpl) SetEntitlement(ctx context.Context, providerID uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&DBProvider{}).
		Where("id = ?", providerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// IncrementAppearances implements domain.ProviderRepository with a single
// relative update, safe under concurrent page loads.
func (r *ProviderRepositoryImpl) IncrementAppearances(ctx context.Context, providerID uint) error {
	return r.db.WithContext(ctx).Model(&DBProvider{}).
		Where("id = ?", providerID).
		UpdateColumn("appearances", gorm.Expr("appearances + 1")).Error
}

// ExpireActivations implements domain.ProviderRepository. Losing activation
// always revokes featured status as well, and both expiry timestamps are
// cleared so a later purchase starts a fresh window instead of stacking on
// revoked days. The statement only matches rows still flagged active, so
// repeated runs with the same now are no-ops.
func (r *ProviderRepositoryImpl) ExpireActivations(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&DBProvider{}).
		Where("is_active = ? AND activated_until IS NOT NULL AND activated_until < ?", true, now).
		Updates(map[string]interface{}{
			"is_active":       false,
			"is_featured":     false,
			"activated_until": nil,
			"featured_until":  nil,
		})
	return res.RowsAffected, res.Error
}

// ExpireFeatures implements domain.ProviderRepository. The expiry timestamp
// goes with the flag for the same reason as in ExpireActivations.
func (r *ProviderRepositoryImpl) ExpireFeatures(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&DBProvider{}).
		Where("is_featured = ? AND featured_until IS NOT NULL AND featured_until < ?", true, now).
		Updates(map[string]interface{}{"is_featured": false, "featured_until": nil})
	return res.RowsAffected, res.Error
}

// ActivationsExpiringBetween implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) ActivationsExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
	return r.expiringBetween(ctx, "is_active", "activated_until", from, to)
}

// FeaturesExpiringBetween implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) FeaturesExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
	return r.expiringBetween(ctx, "is_featured", "featured_until", from, to)
}

func (r *ProviderRepositoryImpl) expiringBetween(ctx context.Context, flagCol, untilCol string, from, to time.Time) ([]domain.Provider, error) {
	var dbProviders []DBProvider
	err := r.db.WithContext(ctx).Preload("User").
		Where(flagCol+" = ?", true).
		Where(untilCol+" >= ? AND "+untilCol+" <= ?", from, to).
		Find(&dbProviders).Error
	if err != nil {
		return nil, err
	}
	providers := make([]domain.Provider, 0, len(dbProviders))
	for i := range dbProviders {
		providers = append(providers, *providerToDomain(&dbProviders[i]))
	}
	return providers, nil
}

// Count implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&DBProvider{}).Count(&total).Error
	return total, err
}

func providerToDB(provider *domain.Provider) *DBProvider {
	return &DBProvider{
		ID:             provider.ID,
		UserID:         provider.UserID,
		Category:       provider.Category,
		Description:    provider.Description,
		Rating:         provider.Rating,
		IsActive:       provider.IsActive,
		ActivatedUntil: provider.ActivatedUntil,
		IsFeatured:     provider.IsFeatured,
		FeaturedUntil:  provider.FeaturedUntil,
		Appearances:    provider.Appearances,
	}
}

func providerToDomain(dbProvider *DBProvider) *domain.Provider {
	provider := &domain.Provider{
		ID:             dbProvider.ID,
		UserID:         dbProvider.UserID,
		Category:       dbProvider.Category,
		Description:    dbProvider.Description,
		Rating:         dbProvider.Rating,
		IsActive:       dbProvider.IsActive,
		ActivatedUntil: dbProvider.ActivatedUntil,
		IsFeatured:     dbProvider.IsFeatured,
		FeaturedUntil:  dbProvider.FeaturedUntil,
		Appearances:    dbProvider.Appearances,
		CreatedAt:      dbProvider.CreatedAt,
		UpdatedAt:      dbProvider.UpdatedAt,
	}
	if dbProvider.User.ID != 0 {
		provider.User = userToDomain(&dbProvider.User)
	}
	return provider
}
