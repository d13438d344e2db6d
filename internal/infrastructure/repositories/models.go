package repositories

import (
	"time"

	"gorm.io/gorm"
)

// DBUser is the database model for User
type DBUser struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255"`
	Email         string `gorm:"uniqueIndex;size:255"`
	PasswordHash  string `gorm:"column:password"`
	Phone         string `gorm:"size:32"`
	Role          string `gorm:"index;size:32"`
	City          string `gorm:"size:128"`
	Neighborhood  string `gorm:"size:128"`
	AvatarURL     string `gorm:"size:512"`
	EmailVerified bool
	IsActivated   bool
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (DBUser) TableName() string { return "users" }

// DBProvider is the database model for Provider
type DBProvider struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"uniqueIndex"`
	Category       string `gorm:"index;size:128"`
	Description    string
	Rating         *float64
	IsActive       bool `gorm:"index"`
	ActivatedUntil *time.Time
	IsFeatured     bool `gorm:"index"`
	FeaturedUntil  *time.Time
	Appearances    int64     `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time

	User DBUser `gorm:"foreignKey:UserID"`
}

func (DBProvider) TableName() string { return "providers" }

// DBReview is the database model for Review
type DBReview struct {
	ID         uint `gorm:"primaryKey"`
	Rating     int
	Comment    string
	ProviderID uint `gorm:"index"`
	AuthorID   uint `gorm:"index"`
	CreatedAt  time.Time

	Author DBUser `gorm:"foreignKey:AuthorID"`
}

func (DBReview) TableName() string { return "reviews" }

// DBPayment is the database model for Payment
type DBPayment struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"uniqueIndex;size:64"`
	Status     string `gorm:"index;size:32"`
	Amount     float64
	Method     string `gorm:"size:64"`
	ProviderID uint   `gorm:"index"`
	Type       string `gorm:"size:32"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DBPayment) TableName() string { return "payments" }

// DBContactLog is the database model for ContactLog
type DBContactLog struct {
	ID         uint `gorm:"primaryKey"`
	ProviderID uint `gorm:"index"`
	ClientID   uint `gorm:"index"`
	CreatedAt  time.Time
}

func (DBContactLog) TableName() string { return "contact_logs" }
