package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// ReviewRepositoryImpl implements domain.ReviewRepository using GORM
type ReviewRepositoryImpl struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

// Create implements domain.ReviewRepository
func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *domain.Review) error {
	dbReview := reviewToDB(review)
	if err := r.db.WithContext(ctx).Create(dbReview).Error; err != nil {
		return err
	}
	review.ID = dbReview.ID
	review.CreatedAt = dbReview.CreatedAt
	return nil
}

// ListByProvider implements domain.ReviewRepository, newest first, with the
// author's public name and avatar joined in.
func (r *ReviewRepositoryImpl) ListByProvider(ctx context.Context, providerID uint) ([]domain.Review, error) {
	var dbReviews []DBReview
	err := r.db.WithContext(ctx).Preload("Author").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&dbReviews).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(dbReviews))
	for i := range dbReviews {
		reviews = append(reviews, *reviewToDomain(&dbReviews[i]))
	}
	return reviews, nil
}

// CreateAndAggregate implements domain.ReviewRepository. The insert, the
// aggregate read and the provider update share one transaction so the read
// observes the new review and concurrent reviews cannot lose each other's
// contribution to the mean.
func (r *ReviewRepositoryImpl) CreateAndAggregate(ctx context.Context, review *domain.Review) (float64, error) {
	var average float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbReview := reviewToDB(review)
		if err := tx.Create(dbReview).Error; err != nil {
			return err
		}
		review.ID = dbReview.ID
		review.CreatedAt = dbReview.CreatedAt

		if err := tx.Model(&DBReview{}).
			Where("provider_id = ?", review.ProviderID).
			Select("AVG(rating)").
			Scan(&average).Error; err != nil {
			return err
		}

		return tx.Model(&DBProvider{}).
			Where("id = ?", review.ProviderID).
			Update("rating", average).Error
	})
	if err != nil {
		return 0, err
	}
	return average, nil
}

func reviewToDB(review *domain.Review) *DBReview {
	return &DBReview{
		ID:         review.ID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ProviderID: review.ProviderID,
		AuthorID:   review.AuthorID,
	}
}

func reviewToDomain(dbReview *DBReview) *domain.Review {
	review := &domain.Review{
		ID:         dbReview.ID,
		Rating:     dbReview.Rating,
		Comment:    dbReview.Comment,
		ProviderID: dbReview.ProviderID,
		AuthorID:   dbReview.AuthorID,
		CreatedAt:  dbReview.CreatedAt,
	}
	if dbReview.Author.ID != 0 {
		review.AuthorName = dbReview.Author.Name
		review.AuthorAvatar = dbReview.Author.AvatarURL
	}
	return review
}
