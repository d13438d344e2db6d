package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(userToDB(user)).Error
}

// MarkEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}

// SetActivated implements domain.UserRepository
func (r *UserRepositoryImpl) SetActivated(ctx context.Context, userID uint, activated bool) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ?", userID).
		Update("is_activated", activated).Error
}

// List implements domain.UserRepository. The optional query matches name or
// email case-insensitively; results are newest first.
func (r *UserRepositoryImpl) List(ctx context.Context, query string, page domain.Pagination) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&DBUser{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbUsers []DBUser
	err := tx.Order("created_at DESC").
		Limit(page.Limit).
		Offset((page.Page - 1) * page.Limit).
		Find(&dbUsers).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *userToDomain(&dbUsers[i]))
	}
	return users, total, nil
}

// Count implements domain.UserRepository
func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&total).Error
	return total, err
}

// CountByRole implements domain.UserRepository
func (r *UserRepositoryImpl) CountByRole(ctx context.Context, role string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("role = ?", role).Count(&total).Error
	return total, err
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		Phone:         user.Phone,
		Role:          user.Role,
		City:          user.City,
		Neighborhood:  user.Neighborhood,
		AvatarURL:     user.AvatarURL,
		EmailVerified: user.EmailVerified,
		IsActivated:   user.IsActivated,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Name:          dbUser.Name,
		Email:         dbUser.Email,
		PasswordHash:  dbUser.PasswordHash,
		Phone:         dbUser.Phone,
		Role:          dbUser.Role,
		City:          dbUser.City,
		Neighborhood:  dbUser.Neighborhood,
		AvatarURL:     dbUser.AvatarURL,
		EmailVerified: dbUser.EmailVerified,
		IsActivated:   dbUser.IsActivated,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
