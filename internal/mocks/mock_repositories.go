package mocks

import (
	"context"
	"time"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	MarkEmailVerifiedFunc func(ctx context.Context, userID uint) error
	SetActivatedFunc      func(ctx context.Context, userID uint, activated bool) error
	ListFunc              func(ctx context.Context, query string, page domain.Pagination) ([]domain.User, int64, error)
	CountFunc             func(ctx context.Context) (int64, error)
	CountByRoleFunc       func(ctx context.Context, role string) (int64, error)
}

func NewMockUserRepository() *MockUserRepository { return &MockUserRepository{} }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) SetActivated(ctx context.Context, userID uint, activated bool) error {
	if m.SetActivatedFunc != nil {
		return m.SetActivatedFunc(ctx, userID, activated)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, query string, page domain.Pagination) ([]domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query, page)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

var _ domain.UserRepository = (*MockUserRepository)(nil)

// MockProviderRepository implements domain.ProviderRepository for testing
type MockProviderRepository struct {
	CreateFunc                     func(ctx context.Context, provider *domain.Provider) error
	FindByIDFunc                   func(ctx context.Context, id uint) (*domain.Provider, error)
	FindByUserIDFunc               func(ctx context.Context, userID uint) (*domain.Provider, error)
	SearchFunc                     func(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) ([]domain.Provider, int64, error)
	CategoriesFunc                 func(ctx context.Context) ([]string, error)
	SetEntitlementFunc             func(ctx context.Context, providerID uint, fields map[string]interface{}) error
	IncrementAppearancesFunc       func(ctx context.Context, providerID uint) error
	ExpireActivationsFunc          func(ctx context.Context, now time.Time) (int64, error)
	ExpireFeaturesFunc             func(ctx context.Context, now time.Time) (int64, error)
	ActivationsExpiringBetweenFunc func(ctx context.Context, from, to time.Time) ([]domain.Provider, error)
	FeaturesExpiringBetweenFunc    func(ctx context.Context, from, to time.Time) ([]domain.Provider, error)
	CountFunc                      func(ctx context.Context) (int64, error)
}

func NewMockProviderRepository() *MockProviderRepository { return &MockProviderRepository{} }

func (m *MockProviderRepository) Create(ctx context.Context, provider *domain.Provider) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, provider)
	}
	return nil
}

func (m *MockProviderRepository) FindByID(ctx context.Context, id uint) (*domain.Provider, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProviderNotFound
}

func (m *MockProviderRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Provider, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrProviderNotFound
}

func (m *MockProviderRepository) Search(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) ([]domain.Provider, int64, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filters, page)
	}
	return nil, 0, nil
}

func (m *MockProviderRepository) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockProviderRepository) SetEntitlement(ctx context.Context, providerID uint, fields map[string]interface{}) error {
	if m.SetEntitlementFunc != nil {
		return m.SetEntitlementFunc(ctx, providerID, fields)
	}
	return nil
}

func (m *MockProviderRepository) IncrementAppearances(ctx context.Context, providerID uint) error {
	if m.IncrementAppearancesFunc != nil {
		return m.IncrementAppearancesFunc(ctx, providerID)
	}
	return nil
}

func (m *MockProviderRepository) ExpireActivations(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireActivationsFunc != nil {
		return m.ExpireActivationsFunc(ctx, now)
	}
	return 0, nil
}

func (m *MockProviderRepository) ExpireFeatures(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireFeaturesFunc != nil {
		return m.ExpireFeaturesFunc(ctx, now)
	}
	return 0, nil
}

func (m *MockProviderRepository) ActivationsExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
	if m.ActivationsExpiringBetweenFunc != nil {
		return m.ActivationsExpiringBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockProviderRepository) FeaturesExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Provider, error) {
	if m.FeaturesExpiringBetweenFunc != nil {
		return m.FeaturesExpiringBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockProviderRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

var _ domain.ProviderRepository = (*MockProviderRepository)(nil)

// MockReviewRepository implements domain.ReviewRepository for testing
type MockReviewRepository struct {
	CreateFunc             func(ctx context.Context, review *domain.Review) error
	ListByProviderFunc     func(ctx context.Context, providerID uint) ([]domain.Review, error)
	CreateAndAggregateFunc func(ctx context.Context, review *domain.Review) (float64, error)
}

func NewMockReviewRepository() *MockReviewRepository { return &MockReviewRepository{} }

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil
}

func (m *MockReviewRepository) ListByProvider(ctx context.Context, providerID uint) ([]domain.Review, error) {
	if m.ListByProviderFunc != nil {
		return m.ListByProviderFunc(ctx, providerID)
	}
	return nil, nil
}

func (m *MockReviewRepository) CreateAndAggregate(ctx context.Context, review *domain.Review) (float64, error) {
	if m.CreateAndAggregateFunc != nil {
		return m.CreateAndAggregateFunc(ctx, review)
	}
	return float64(review.Rating), nil
}

var _ domain.ReviewRepository = (*MockReviewRepository)(nil)

// MockPaymentRepository implements domain.PaymentRepository for testing
type MockPaymentRepository struct {
	CreateFunc               func(ctx context.Context, payment *domain.Payment) error
	FindByExternalIDFunc     func(ctx context.Context, externalID string) (*domain.Payment, error)
	TransitionToApprovedFunc func(ctx context.Context, externalID string) (bool, error)
	UpdateStatusFunc         func(ctx context.Context, externalID, status string) error
	SumApprovedFunc          func(ctx context.Context) (float64, error)
}

func NewMockPaymentRepository() *MockPaymentRepository { return &MockPaymentRepository{} }

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payment)
	}
	return nil
}

func (m *MockPaymentRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Payment, error) {
	if m.FindByExternalIDFunc != nil {
		return m.FindByExternalIDFunc(ctx, externalID)
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) TransitionToApproved(ctx context.Context, externalID string) (bool, error) {
	if m.TransitionToApprovedFunc != nil {
		return m.TransitionToApprovedFunc(ctx, externalID)
	}
	return true, nil
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, externalID, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, externalID, status)
	}
	return nil
}

func (m *MockPaymentRepository) SumApproved(ctx context.Context) (float64, error) {
	if m.SumApprovedFunc != nil {
		return m.SumApprovedFunc(ctx)
	}
	return 0, nil
}

var _ domain.PaymentRepository = (*MockPaymentRepository)(nil)

// MockContactLogRepository implements domain.ContactLogRepository for testing
type MockContactLogRepository struct {
	CreateFunc          func(ctx context.Context, log *domain.ContactLog) error
	CountByProviderFunc func(ctx context.Context, providerID uint) (int64, error)
	CountFunc           func(ctx context.Context) (int64, error)
}

func NewMockContactLogRepository() *MockContactLogRepository { return &MockContactLogRepository{} }

func (m *MockContactLogRepository) Create(ctx context.Context, log *domain.ContactLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return nil
}

func (m *MockContactLogRepository) CountByProvider(ctx context.Context, providerID uint) (int64, error) {
	if m.CountByProviderFunc != nil {
		return m.CountByProviderFunc(ctx, providerID)
	}
	return 0, nil
}

func (m *MockContactLogRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

var _ domain.ContactLogRepository = (*MockContactLogRepository)(nil)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc   func(ctx context.Context, session *domain.Session) error
	FindByIDFunc func(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteFunc   func(ctx context.Context, sessionID string) error
}

func NewMockSessionRepository() *MockSessionRepository { return &MockSessionRepository{} }

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	return nil
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)
