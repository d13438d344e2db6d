package mocks

import (
	"context"
	"time"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService { return &MockPasswordService{} }

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role string, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService { return &MockTokenService{} }

func (m *MockTokenService) GenerateAccessToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role, sessionID)
	}
	return "access_token", nil
}

func (m *MockTokenService) GenerateRefreshToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role, sessionID)
	}
	return "refresh_token", nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

var _ domain.TokenService = (*MockTokenService)(nil)

// MockNotificationSender implements domain.NotificationSender for testing
type MockNotificationSender struct {
	SendEmailFunc func(to, subject, body string) error
	SendSMSFunc   func(to, message string) error
}

func NewMockNotificationSender() *MockNotificationSender { return &MockNotificationSender{} }

func (m *MockNotificationSender) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

func (m *MockNotificationSender) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

var _ domain.NotificationSender = (*MockNotificationSender)(nil)

// MockVerificationService implements domain.VerificationService for testing
type MockVerificationService struct {
	GenerateFunc func(ctx context.Context, email string, userID uint) (string, error)
	VerifyFunc   func(ctx context.Context, email, code string) (bool, error)
}

func NewMockVerificationService() *MockVerificationService { return &MockVerificationService{} }

func (m *MockVerificationService) Generate(ctx context.Context, email string, userID uint) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, email, userID)
	}
	return "123456", nil
}

func (m *MockVerificationService) Verify(ctx context.Context, email, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	return true, nil
}

var _ domain.VerificationService = (*MockVerificationService)(nil)

// MockPaymentGateway implements domain.PaymentGateway for testing
type MockPaymentGateway struct {
	ChargeFunc      func(ctx context.Context, amount float64, description, reference string, form domain.ChargeRequest) (*domain.ChargeResult, error)
	FetchStatusFunc func(ctx context.Context, externalID string) (string, error)
}

func NewMockPaymentGateway() *MockPaymentGateway { return &MockPaymentGateway{} }

func (m *MockPaymentGateway) Charge(ctx context.Context, amount float64, description, reference string, form domain.ChargeRequest) (*domain.ChargeResult, error) {
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, amount, description, reference, form)
	}
	return &domain.ChargeResult{ExternalID: "1", Status: domain.PaymentStatusApproved}, nil
}

func (m *MockPaymentGateway) FetchStatus(ctx context.Context, externalID string) (string, error) {
	if m.FetchStatusFunc != nil {
		return m.FetchStatusFunc(ctx, externalID)
	}
	return domain.PaymentStatusApproved, nil
}

var _ domain.PaymentGateway = (*MockPaymentGateway)(nil)

// MockEntitlementService implements domain.EntitlementService for testing
type MockEntitlementService struct {
	GrantActivationFunc           func(ctx context.Context, providerID uint, now time.Time) error
	GrantFeatureFunc              func(ctx context.Context, providerID uint, now time.Time) error
	ApplyPaymentOutcomeFunc       func(ctx context.Context, payment *domain.Payment) error
	SweepExpirationsFunc          func(ctx context.Context, now time.Time) (*domain.SweepSummary, error)
	NotifyUpcomingExpirationsFunc func(ctx context.Context, now time.Time) (*domain.SweepSummary, error)
}

func NewMockEntitlementService() *MockEntitlementService { return &MockEntitlementService{} }

func (m *MockEntitlementService) GrantActivation(ctx context.Context, providerID uint, now time.Time) error {
	if m.GrantActivationFunc != nil {
		return m.GrantActivationFunc(ctx, providerID, now)
	}
	return nil
}

func (m *MockEntitlementService) GrantFeature(ctx context.Context, providerID uint, now time.Time) error {
	if m.GrantFeatureFunc != nil {
		return m.GrantFeatureFunc(ctx, providerID, now)
	}
	return nil
}

func (m *MockEntitlementService) ApplyPaymentOutcome(ctx context.Context, payment *domain.Payment) error {
	if m.ApplyPaymentOutcomeFunc != nil {
		return m.ApplyPaymentOutcomeFunc(ctx, payment)
	}
	return nil
}

func (m *MockEntitlementService) SweepExpirations(ctx context.Context, now time.Time) (*domain.SweepSummary, error) {
	if m.SweepExpirationsFunc != nil {
		return m.SweepExpirationsFunc(ctx, now)
	}
	return &domain.SweepSummary{}, nil
}

func (m *MockEntitlementService) NotifyUpcomingExpirations(ctx context.Context, now time.Time) (*domain.SweepSummary, error) {
	if m.NotifyUpcomingExpirationsFunc != nil {
		return m.NotifyUpcomingExpirationsFunc(ctx, now)
	}
	return &domain.SweepSummary{}, nil
}

var _ domain.EntitlementService = (*MockEntitlementService)(nil)

// MockReviewService implements domain.ReviewService for testing
type MockReviewService struct {
	RecordReviewFunc func(ctx context.Context, providerID, authorID uint, rating int, comment string) (*domain.Review, error)
	ListReviewsFunc  func(ctx context.Context, providerID uint) ([]domain.Review, error)
}

func NewMockReviewService() *MockReviewService { return &MockReviewService{} }

func (m *MockReviewService) RecordReview(ctx context.Context, providerID, authorID uint, rating int, comment string) (*domain.Review, error) {
	if m.RecordReviewFunc != nil {
		return m.RecordReviewFunc(ctx, providerID, authorID, rating, comment)
	}
	return &domain.Review{ProviderID: providerID, AuthorID: authorID, Rating: rating, Comment: comment}, nil
}

func (m *MockReviewService) ListReviews(ctx context.Context, providerID uint) ([]domain.Review, error) {
	if m.ListReviewsFunc != nil {
		return m.ListReviewsFunc(ctx, providerID)
	}
	return nil, nil
}

var _ domain.ReviewService = (*MockReviewService)(nil)

// MockSearchService implements domain.SearchService for testing
type MockSearchService struct {
	SearchFunc     func(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) (*domain.SearchResult, error)
	CategoriesFunc func(ctx context.Context) ([]string, error)
}

func NewMockSearchService() *MockSearchService { return &MockSearchService{} }

func (m *MockSearchService) Search(ctx context.Context, filters domain.SearchFilters, page domain.Pagination) (*domain.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filters, page)
	}
	return &domain.SearchResult{Page: 1}, nil
}

func (m *MockSearchService) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

var _ domain.SearchService = (*MockSearchService)(nil)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	VerifyEmailFunc    func(ctx context.Context, email, code string) error
	ResendCodeFunc     func(ctx context.Context, email string) error
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc   func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, sessionID string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

func NewMockAuthService() *MockAuthService { return &MockAuthService{} }

func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.User{ID: 1, Email: input.Email, Role: input.Role}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) ResendCode(ctx context.Context, email string) error {
	if m.ResendCodeFunc != nil {
		return m.ResendCodeFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

var _ domain.AuthService = (*MockAuthService)(nil)

// MockPaymentService implements domain.PaymentService for testing
type MockPaymentService struct {
	ChargeFunc          func(ctx context.Context, providerOrUserID uint, purchaseType string, form domain.ChargeRequest) (*domain.ChargeResult, error)
	SyncFromGatewayFunc func(ctx context.Context, externalID string) error
}

func NewMockPaymentService() *MockPaymentService { return &MockPaymentService{} }

func (m *MockPaymentService) Charge(ctx context.Context, providerOrUserID uint, purchaseType string, form domain.ChargeRequest) (*domain.ChargeResult, error) {
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, providerOrUserID, purchaseType, form)
	}
	return &domain.ChargeResult{ExternalID: "1", Status: domain.PaymentStatusApproved}, nil
}

func (m *MockPaymentService) SyncFromGateway(ctx context.Context, externalID string) error {
	if m.SyncFromGatewayFunc != nil {
		return m.SyncFromGatewayFunc(ctx, externalID)
	}
	return nil
}

var _ domain.PaymentService = (*MockPaymentService)(nil)

// MockFileStorage implements domain.FileStorage for testing
type MockFileStorage struct {
	UploadAvatarFunc func(ctx context.Context, fileName string, data []byte) (string, error)
}

func NewMockFileStorage() *MockFileStorage { return &MockFileStorage{} }

func (m *MockFileStorage) UploadAvatar(ctx context.Context, fileName string, data []byte) (string, error) {
	if m.UploadAvatarFunc != nil {
		return m.UploadAvatarFunc(ctx, fileName, data)
	}
	return "https://cdn.example.com/" + fileName, nil
}

var _ domain.FileStorage = (*MockFileStorage)(nil)
