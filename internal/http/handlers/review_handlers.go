package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// ReviewHandlers handles review creation and listing
type ReviewHandlers struct {
	reviewSvc domain.ReviewService
}

// NewReviewHandlers creates new review handlers
func NewReviewHandlers(reviewSvc domain.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviewSvc: reviewSvc}
}

// CreateReviewRequest represents a review submission. Rating is a pointer so
// "missing" and "zero" are distinguishable at binding time.
type CreateReviewRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	Rating     *int   `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

// Create handles POST /reviews (requires authentication)
func (h *ReviewHandlers) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prestador e nota são obrigatórios"})
		return
	}

	authorID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	review, err := h.reviewSvc.RecordReview(c.Request.Context(), req.ProviderID, authorID, *req.Rating, req.Comment)
	if err != nil {
		switch err {
		case domain.ErrInvalidRating:
			c.JSON(http.StatusBadRequest, gin.H{"error": "A nota deve ser entre 1 e 5"})
		case domain.ErrProviderNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Prestador não encontrado"})
		case domain.ErrSelfReview:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Você não pode avaliar a si mesmo"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar avaliação"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"id":          review.ID,
			"rating":      review.Rating,
			"comment":     review.Comment,
			"provider_id": review.ProviderID,
			"author_id":   review.AuthorID,
			"created_at":  review.CreatedAt,
		},
	})
}

// ListByProvider handles GET /reviews/:providerId
func (h *ReviewHandlers) ListByProvider(c *gin.Context) {
	providerID, err := pathID(c, "providerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider id"})
		return
	}

	reviews, err := h.reviewSvc.ListReviews(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar avaliações"})
		return
	}

	views := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, gin.H{
			"id":         review.ID,
			"rating":     review.Rating,
			"comment":    review.Comment,
			"created_at": review.CreatedAt,
			"author": gin.H{
				"name":       review.AuthorName,
				"avatar_url": review.AuthorAvatar,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}
