package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/services"
)

// AdminHandlers handles the role-gated console endpoints
type AdminHandlers struct {
	statsSvc     *services.StatsService
	userRepo     domain.UserRepository
	providerRepo domain.ProviderRepository
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(statsSvc *services.StatsService, userRepo domain.UserRepository, providerRepo domain.ProviderRepository) *AdminHandlers {
	return &AdminHandlers{
		statsSvc:     statsSvc,
		userRepo:     userRepo,
		providerRepo: providerRepo,
	}
}

// Stats handles GET /admin/stats
func (h *AdminHandlers) Stats(c *gin.Context) {
	stats, err := h.statsSvc.Admin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":         stats.Users,
		"providers":     stats.Providers,
		"totalContacts": stats.TotalContacts,
		"revenue":       stats.Revenue,
	})
}

// ListUsers handles GET /admin/users with search and pagination
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	page := domain.Pagination{
		Page:  intQuery(c, "page", 1),
		Limit: intQuery(c, "limit", 10),
	}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = 10
	}

	users, total, err := h.userRepo.List(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		view := gin.H{
			"id":             user.ID,
			"name":           user.Name,
			"email":          user.Email,
			"role":           user.Role,
			"phone":          user.Phone,
			"city":           user.City,
			"neighborhood":   user.Neighborhood,
			"email_verified": user.EmailVerified,
			"is_activated":   user.IsActivated,
			"created_at":     user.CreatedAt,
		}
		if provider, err := h.providerRepo.FindByUserID(c.Request.Context(), user.ID); err == nil {
			view["provider"] = providerView(*provider)
		}
		views = append(views, view)
	}

	lastPage := (total + int64(page.Limit) - 1) / int64(page.Limit)
	c.JSON(http.StatusOK, gin.H{
		"data": views,
		"meta": gin.H{
			"total":    total,
			"page":     page.Page,
			"lastPage": lastPage,
		},
	})
}

// ToggleFeature handles PATCH /admin/providers/:providerId/toggle-feature
func (h *AdminHandlers) ToggleFeature(c *gin.Context) {
	providerID, err := pathID(c, "providerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider id"})
		return
	}

	provider, err := h.providerRepo.FindByID(c.Request.Context(), providerID)
	if err != nil {
		if err == domain.ErrProviderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prestador não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load provider"})
		return
	}

	fields := map[string]interface{}{"is_featured": !provider.IsFeatured}
	// A lapsed expiry counts as no expiry, otherwise the nightly sweep
	// would revert the toggle right away.
	if !provider.IsFeatured && !expiryLive(provider.FeaturedUntil) {
		until := time.Now().Add(30 * 24 * time.Hour)
		fields["featured_until"] = until
	}

	if err := h.providerRepo.SetEntitlement(c.Request.Context(), providerID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"is_featured": !provider.IsFeatured},
	})
}

// ToggleActive handles PATCH /admin/users/:id/toggle-active. Deactivating
// always clears the featured flag; activating backfills a 30-day expiry when
// none is set or the stored one already lapsed.
func (h *AdminHandlers) ToggleActive(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	provider, err := h.providerRepo.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if err == domain.ErrProviderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prestador não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load provider"})
		return
	}

	newStatus := !provider.IsActive
	fields := map[string]interface{}{
		"is_active":   newStatus,
		"is_featured": newStatus && provider.IsFeatured,
	}
	if newStatus && !expiryLive(provider.ActivatedUntil) {
		until := time.Now().Add(30 * 24 * time.Hour)
		fields["activated_until"] = until
	}

	if err := h.providerRepo.SetEntitlement(c.Request.Context(), provider.ID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar alteração de status"})
		return
	}

	if err := h.userRepo.SetActivated(c.Request.Context(), userID, newStatus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar alteração de status"})
		return
	}

	message := "Usuário desativado com sucesso"
	if newStatus {
		message = "Usuário ativado com sucesso"
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": message}})
}

// expiryLive reports whether an entitlement window still has time left.
func expiryLive(until *time.Time) bool {
	return until != nil && until.After(time.Now())
}
