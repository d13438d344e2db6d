package services

import (
	"context"
	"fmt"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// StatsService aggregates the counters shown on the landing page and the
// admin dashboard.
type StatsService struct {
	userRepo     domain.UserRepository
	providerRepo domain.ProviderRepository
	contactRepo  domain.ContactLogRepository
	paymentRepo  domain.PaymentRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	userRepo domain.UserRepository,
	providerRepo domain.ProviderRepository,
	contactRepo domain.ContactLogRepository,
	paymentRepo domain.PaymentRepository,
) *StatsService {
	return &StatsService{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		contactRepo:  contactRepo,
		paymentRepo:  paymentRepo,
	}
}

// Public returns the anonymous platform counters
func (s *StatsService) Public(ctx context.Context) (*domain.PublicStats, error) {
	providers, err := s.providerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count providers: %w", err)
	}
	clients, err := s.userRepo.CountByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	return &domain.PublicStats{Providers: providers, Clients: clients}, nil
}

// Admin returns the console dashboard aggregate, including approved revenue
func (s *StatsService) Admin(ctx context.Context) (*domain.AdminStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	providers, err := s.providerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count providers: %w", err)
	}
	contacts, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	revenue, err := s.paymentRepo.SumApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return &domain.AdminStats{
		Users:         users,
		Providers:     providers,
		TotalContacts: contacts,
		Revenue:       revenue,
	}, nil
}
