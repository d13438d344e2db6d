package services

import (
	"context"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// SearchServiceImpl implements domain.SearchService. The repository applies
// the filter predicates and the primary ordering; the proximity bias is a
// pure, stable post-sort over the fetched page.
type SearchServiceImpl struct {
	providerRepo domain.ProviderRepository
}

// NewSearchService creates a new search service
func NewSearchService(providerRepo domain.ProviderRepository) domain.SearchService {
	return &SearchServiceImpl{providerRepo: providerRepo}
}

// Search implements domain.SearchService
func (s *SearchServiceImpl) Search(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) (*domain.SearchResult, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	items, total, err := s.providerRepo.Search(ctx, filters, page)
	if err != nil {
		return nil, err
	}

	if filters.Neighborhood != "" {
		items = RankByProximity(items, filters.Neighborhood)
	}

	return &domain.SearchResult{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		LastPage: int(math.Ceil(float64(total) / float64(page.Limit))),
	}, nil
}

// Categories implements domain.SearchService
func (s *SearchServiceImpl) Categories(ctx context.Context) ([]string, error) {
	return s.providerRepo.Categories(ctx)
}

// RankByProximity moves providers whose normalized neighborhood contains, or
// is contained by, the normalized query to the front. The pass is stable:
// relative order inside each partition is preserved.
func RankByProximity(providers []domain.Provider, neighborhood string) []domain.Provider {
	query := NormalizeText(neighborhood)
	if query == "" {
		return providers
	}

	matched := make([]domain.Provider, 0, len(providers))
	rest := make([]domain.Provider, 0, len(providers))
	for _, provider := range providers {
		own := ""
		if provider.User != nil {
			own = NormalizeText(provider.User.Neighborhood)
		}
		if own != "" && (strings.Contains(own, query) || strings.Contains(query, own)) {
			matched = append(matched, provider)
		} else {
			rest = append(rest, provider)
		}
	}
	return append(matched, rest...)
}

// NormalizeText strips diacritics, lowercases and trims the given text so
// neighborhood strings compare the way people type them.
func NormalizeText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}
