package repository

import (
	"context"

	"github.com/Ggirassol/myIntake-API/models"

	"gorm.io/gorm"
)

// UserRepository is the store surface the auth-side services need. Lookups
// return gorm.ErrRecordNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	RotateVerification(ctx context.Context, id, token, issuedAt, passwordHash string) error
	MarkVerified(ctx context.Context, id string) error
	SetRefreshToken(ctx context.Context, id string, token *string) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RotateVerification overwrites the pending registration: new verification
// token, new issuance timestamp, new password hash.
func (r *GormUserRepository) RotateVerification(ctx context.Context, id, token, issuedAt, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_token":      token,
			"last_verification_token": issuedAt,
			"password":                passwordHash,
		}).Error
}

// MarkVerified flips verified and clears both verification columns.
func (r *GormUserRepository) MarkVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"verified":                true,
			"verification_token":      nil,
			"last_verification_token": nil,
		}).Error
}

// SetRefreshToken stores the session's refresh token; nil clears it (logout).
func (r *GormUserRepository) SetRefreshToken(ctx context.Context, id string, token *string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("refresh_token", token).Error
}
