package services

import (
	"context"
	"fmt"
	"log"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// ReviewServiceImpl implements domain.ReviewService. Recording a review also
// recomputes the provider's displayed rating from all of its reviews.
type ReviewServiceImpl struct {
	reviewRepo   domain.ReviewRepository
	providerRepo domain.ProviderRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo domain.ReviewRepository, providerRepo domain.ProviderRepository) domain.ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:   reviewRepo,
		providerRepo: providerRepo,
	}
}

// RecordReview implements domain.ReviewService. Preconditions are checked
// before any mutation; the insert and the mean recomputation run in one
// transaction inside the repository.
func (s *ReviewServiceImpl) RecordReview(ctx context.Context, providerID, authorID uint, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	provider, err := s.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if provider.UserID == authorID {
		return nil, domain.ErrSelfReview
	}

	review := &domain.Review{
		Rating:     rating,
		Comment:    comment,
		ProviderID: providerID,
		AuthorID:   authorID,
	}

	average, err := s.reviewRepo.CreateAndAggregate(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to record review: %w", err)
	}

	log.Printf("REVIEW_RECORDED: provider_id=%d author_id=%d rating=%d new_average=%.2f",
		providerID, authorID, rating, average)

	return review, nil
}

// ListReviews implements domain.ReviewService
func (s *ReviewServiceImpl) ListReviews(ctx context.Context, providerID uint) ([]domain.Review, error) {
	return s.reviewRepo.ListByProvider(ctx, providerID)
}
