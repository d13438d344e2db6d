package domain

import "time"

// User roles
const (
	RoleClient   = "CLIENT"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// Payment purchase types
const (
	PaymentTypeActivation = "ACTIVATION"
	PaymentTypeFeatured   = "FEATURED"
)

// Payment statuses as reported by the gateway
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Notification template kinds
const (
	NoticeVerificationCode = "verification_code"
	NoticeActivationExpiry = "activation_expiring"
	NoticeFeaturedExpiry   = "featured_expiring"
)

// User represents an identity record in the marketplace
type User struct {
	ID            uint
	Name          string
	Email         string
	PasswordHash  string
	Phone         string
	Role          string
	City          string
	Neighborhood  string
	AvatarURL     string
	EmailVerified bool
	IsActivated   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Provider is the business profile of a PROVIDER-role user.
// Rating is derived from reviews; the entitlement flags and their expiry
// timestamps are owned by the entitlement engine.
type Provider struct {
	ID             uint
	UserID         uint
	Category       string
	Description    string
	Rating         *float64
	IsActive       bool
	ActivatedUntil *time.Time
	IsFeatured     bool
	FeaturedUntil  *time.Time
	Appearances    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User *User
}

// Review is a client's rating of a provider. Created, never mutated.
type Review struct {
	ID         uint
	Rating     int
	Comment    string
	ProviderID uint
	AuthorID   uint
	CreatedAt  time.Time

	AuthorName   string
	AuthorAvatar string
}

// Payment records one charge attempt against the gateway. ExternalID is the
// idempotency key for webhook reconciliation.
type Payment struct {
	ID         uint
	ExternalID string
	Status     string
	Amount     float64
	Method     string
	ProviderID uint
	Type       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContactLog is an append-only audit record of a contact click.
type ContactLog struct {
	ID         uint
	ProviderID uint
	ClientID   uint
	CreatedAt  time.Time
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// RegisterInput carries everything needed to create an account. Category and
// Description are only meaningful for PROVIDER registrations.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	Role         string
	City         string
	Neighborhood string
	Category     string
	Description  string
}

// SearchFilters are the optional, AND-combined provider search criteria.
type SearchFilters struct {
	Category     string
	City         string
	Neighborhood string
	Query        string
}

// Pagination is a 1-indexed page request.
type Pagination struct {
	Page  int
	Limit int
}

// SearchResult carries one page of ranked providers plus paging metadata.
type SearchResult struct {
	Items    []Provider
	Total    int64
	Page     int
	LastPage int
}

// ChargeRequest is the card/pix form data forwarded to the payment gateway.
type ChargeRequest struct {
	Token           string
	Installments    int
	PaymentMethodID string
	IssuerID        string
	PayerEmail      string
	PayerFirstName  string
	PayerLastName   string
	PayerDocType    string
	PayerDocNumber  string
}

// ChargeResult is the gateway's view of a charge attempt. Core logic only
// interprets ExternalID and Status; everything else is passed through.
type ChargeResult struct {
	ExternalID   string
	Status       string
	StatusDetail string
	QRCode       string
	TicketURL    string
}

// ExpiryNotice is the payload composed for one upcoming-expiry warning.
type ExpiryNotice struct {
	ProviderID uint
	Email      string
	Name       string
	Kind       string
	ExpiresAt  time.Time
}

// SweepSummary aggregates the outcome of one scheduler run.
type SweepSummary struct {
	Deactivated  int64
	Unfeatured   int64
	Notified     int
	NotifyFailed int
}

// AdminStats is the admin console dashboard aggregate.
type AdminStats struct {
	Users         int64
	Providers     int64
	TotalContacts int64
	Revenue       float64
}

// PublicStats is the anonymous landing-page aggregate.
type PublicStats struct {
	Providers int64
	Clients   int64
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
