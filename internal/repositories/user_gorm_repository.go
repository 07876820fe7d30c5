package repositories

import (
	"context"
	"errors"
	"fmt"

	"teslo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. A taken email yields a *ConflictError.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		err = translateError(err)
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return conflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetCredentialsByEmail retrieves the login fields of a user by email.
func (r *GORMUserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id", "email", "password", "roles").
		First(&user, "email = ?", models.NormalizeEmail(email)).Error
	if err != nil {
		return nil, r.lookupError(err, "email", email)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		return nil, r.lookupError(err, "email", email)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, r.lookupError(err, "ID", id)
	}
	return &user, nil
}

// DeleteAll removes every user. Products must be removed first.
func (r *GORMUserRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

func (r *GORMUserRepository) lookupError(err error, field, value string) error {
	if errors.Is(translateError(err), ErrNotFound) {
		return fmt.Errorf("user with %s %s: %w", field, value, ErrNotFound)
	}
	return fmt.Errorf("failed to get user by %s %s: %w", field, value, err)
}
