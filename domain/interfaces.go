package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	SetActivated(ctx context.Context, userID uint, activated bool) error
	List(ctx context.Context, query string, page Pagination) ([]User, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// ProviderRepository defines provider data access operations. Mutations are
// field-scoped so that the rating, entitlement and view-counter flows never
// clobber each other's columns.
type ProviderRepository interface {
	Create(ctx context.Context, provider *Provider) error
	FindByID(ctx context.Context, id uint) (*Provider, error)
	FindByUserID(ctx context.Context, userID uint) (*Provider, error)
	Search(ctx context.Context, filters SearchFilters, page Pagination) ([]Provider, int64, error)
	Categories(ctx context.Context) ([]string, error)
	SetEntitlement(ctx context.Context, providerID uint, fields map[string]interface{}) error
	IncrementAppearances(ctx context.Context, providerID uint) error
	ExpireActivations(ctx context.Context, now time.Time) (int64, error)
	ExpireFeatures(ctx context.Context, now time.Time) (int64, error)
	ActivationsExpiringBetween(ctx context.Context, from, to time.Time) ([]Provider, error)
	FeaturesExpiringBetween(ctx context.Context, from, to time.Time) ([]Provider, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository defines review data access operations
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	ListByProvider(ctx context.Context, providerID uint) ([]Review, error)
	// CreateAndAggregate persists the review, recomputes the provider's mean
	// rating from all reviews and writes it back, all in one transaction.
	CreateAndAggregate(ctx context.Context, review *Review) (float64, error)
}

// PaymentRepository defines payment data access operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByExternalID(ctx context.Context, externalID string) (*Payment, error)
	// TransitionToApproved flips the payment's status to approved only if it
	// is not approved yet. Returns true when this call made the transition,
	// which is the at-least-once guard for entitlement grants.
	TransitionToApproved(ctx context.Context, externalID string) (bool, error)
	UpdateStatus(ctx context.Context, externalID, status string) error
	SumApproved(ctx context.Context) (float64, error)
}

// ContactLogRepository defines contact click audit operations
type ContactLogRepository interface {
	Create(ctx context.Context, log *ContactLog) error
	CountByProvider(ctx context.Context, providerID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthService defines registration and authentication business logic
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// ReviewService defines the rating aggregation flow
type ReviewService interface {
	RecordReview(ctx context.Context, providerID, authorID uint, rating int, comment string) (*Review, error)
	ListReviews(ctx context.Context, providerID uint) ([]Review, error)
}

// EntitlementService governs the activation and featured state machines
type EntitlementService interface {
	GrantActivation(ctx context.Context, providerID uint, now time.Time) error
	GrantFeature(ctx context.Context, providerID uint, now time.Time) error
	ApplyPaymentOutcome(ctx context.Context, payment *Payment) error
	SweepExpirations(ctx context.Context, now time.Time) (*SweepSummary, error)
	NotifyUpcomingExpirations(ctx context.Context, now time.Time) (*SweepSummary, error)
}

// SearchService defines the provider search ranker
type SearchService interface {
	Search(ctx context.Context, filters SearchFilters, page Pagination) (*SearchResult, error)
	Categories(ctx context.Context) ([]string, error)
}

// PaymentService drives charges and webhook reconciliation
type PaymentService interface {
	Charge(ctx context.Context, providerOrUserID uint, purchaseType string, form ChargeRequest) (*ChargeResult, error)
	SyncFromGateway(ctx context.Context, externalID string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationSender delivers transactional messages. Transport details are
// outside the core; failures are isolated per recipient.
type NotificationSender interface {
	SendEmail(to, subject, body string) error
	SendSMS(to, message string) error
}

// VerificationService issues and checks email verification codes
type VerificationService interface {
	Generate(ctx context.Context, email string, userID uint) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
}

// PaymentGateway is the boundary to the external payment processor
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, description, reference string, form ChargeRequest) (*ChargeResult, error)
	FetchStatus(ctx context.Context, externalID string) (string, error)
}

// FileStorage stores uploaded files and returns their public URL
type FileStorage interface {
	UploadAvatar(ctx context.Context, fileName string, data []byte) (string, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
