package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/services"
)

// ProviderHandlers handles provider search, detail and contact logging
type ProviderHandlers struct {
	searchSvc    domain.SearchService
	providerRepo domain.ProviderRepository
	contactRepo  domain.ContactLogRepository
	statsSvc     *services.StatsService
}

// NewProviderHandlers creates new provider handlers
func NewProviderHandlers(
	searchSvc domain.SearchService,
	providerRepo domain.ProviderRepository,
	contactRepo domain.ContactLogRepository,
	statsSvc *services.StatsService,
) *ProviderHandlers {
	return &ProviderHandlers{
		searchSvc:    searchSvc,
		providerRepo: providerRepo,
		contactRepo:  contactRepo,
		statsSvc:     statsSvc,
	}
}

// ContactRequest represents a contact click
type ContactRequest struct {
	ClientID uint `json:"client_id" binding:"required"`
}

// Search handles GET /providers with optional filters and pagination
func (h *ProviderHandlers) Search(c *gin.Context) {
	filters := domain.SearchFilters{
		Category:     c.Query("category"),
		City:         c.Query("city"),
		Neighborhood: c.Query("neighborhood"),
		Query:        c.Query("q"),
	}
	page := domain.Pagination{
		Page:  intQuery(c, "page", 1),
		Limit: intQuery(c, "limit", 10),
	}

	result, err := h.searchSvc.Search(c.Request.Context(), filters, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar prestadores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": providerViews(result.Items),
		"meta": gin.H{
			"total":    result.Total,
			"page":     result.Page,
			"lastPage": result.LastPage,
		},
	})
}

// Detail handles GET /providers/:id and counts the appearance
func (h *ProviderHandlers) Detail(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider id"})
		return
	}

	provider, err := h.providerRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrProviderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prestador não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar prestador"})
		return
	}

	if err := h.providerRepo.IncrementAppearances(c.Request.Context(), id); err != nil {
		log.Printf("APPEARANCE_COUNT_FAILED: provider_id=%d error=%v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"data": providerView(*provider)})
}

// Contact handles POST /providers/:id/contact
func (h *ProviderHandlers) Contact(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider id"})
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contactLog := &domain.ContactLog{ProviderID: id, ClientID: req.ClientID}
	if err := h.contactRepo.Create(c.Request.Context(), contactLog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"message": "Clique registrado"},
	})
}

// ContactStats handles GET /providers/:id/stats
func (h *ProviderHandlers) ContactStats(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider id"})
		return
	}

	count, err := h.contactRepo.CountByProvider(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar contatos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"contacts": count}})
}

// Categories handles GET /categories
func (h *ProviderHandlers) Categories(c *gin.Context) {
	categories, err := h.searchSvc.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar categorias"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// ByCategory handles GET /categories/:category
func (h *ProviderHandlers) ByCategory(c *gin.Context) {
	result, err := h.searchSvc.Search(c.Request.Context(), domain.SearchFilters{
		Category: c.Param("category"),
	}, domain.Pagination{
		Page:  intQuery(c, "page", 1),
		Limit: intQuery(c, "limit", 10),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar prestadores da categoria"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": providerViews(result.Items),
		"meta": gin.H{
			"total":    result.Total,
			"page":     result.Page,
			"lastPage": result.LastPage,
		},
	})
}

// PublicStats handles GET /stats
func (h *ProviderHandlers) PublicStats(c *gin.Context) {
	stats, err := h.statsSvc.Public(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar estatísticas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"providers": stats.Providers,
			"clients":   stats.Clients,
		},
	})
}

// providerView shapes one provider plus the public fields of its owner
func providerView(provider domain.Provider) gin.H {
	view := gin.H{
		"id":              provider.ID,
		"category":        provider.Category,
		"description":     provider.Description,
		"rating":          provider.Rating,
		"is_active":       provider.IsActive,
		"is_featured":     provider.IsFeatured,
		"activated_until": provider.ActivatedUntil,
		"featured_until":  provider.FeaturedUntil,
		"appearances":     provider.Appearances,
		"created_at":      provider.CreatedAt,
	}
	if provider.User != nil {
		view["user"] = gin.H{
			"id":           provider.User.ID,
			"name":         provider.User.Name,
			"phone":        provider.User.Phone,
			"avatar_url":   provider.User.AvatarURL,
			"city":         provider.User.City,
			"neighborhood": provider.User.Neighborhood,
		}
	}
	return view
}

func providerViews(providers []domain.Provider) []gin.H {
	views := make([]gin.H, 0, len(providers))
	for _, provider := range providers {
		views = append(views, providerView(provider))
	}
	return views
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}

// intQuery parses an integer query parameter with a default
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
