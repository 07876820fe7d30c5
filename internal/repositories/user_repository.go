package repositories

import (
	"context"

	"teslo/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetCredentialsByEmail loads only the fields needed to verify a login.
	GetCredentialsByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	DeleteAll(ctx context.Context) error
}
