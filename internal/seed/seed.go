package seed

import (
	"context"
	"fmt"

	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Executed is the result message of a successful run.
const Executed = "SEED EXECUTED"

// Service resets the catalog to a known set of users and products.
type Service struct {
	users    repositories.UserRepository
	products *services.ProductService
	logger   *zap.Logger
}

// NewService creates a seed Service.
func NewService(users repositories.UserRepository, products *services.ProductService, logger *zap.Logger) *Service {
	return &Service{users: users, products: products, logger: logger}
}

// Run deletes every product and user, then inserts the seed data. Products
// are owned by the first seed user.
func (s *Service) Run(ctx context.Context) (string, error) {
	if err := s.products.DeleteAll(ctx); err != nil {
		return "", err
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		s.logger.Error("seed failed", zap.Error(err))
		return "", err
	}

	owner, err := s.insertUsers(ctx)
	if err != nil {
		s.logger.Error("seed failed", zap.Error(err))
		return "", err
	}

	for _, input := range initialProducts {
		if _, err := s.products.Create(ctx, input, owner); err != nil {
			return "", err
		}
	}

	s.logger.Info("seed executed",
		zap.Int("users", len(initialUsers)),
		zap.Int("products", len(initialProducts)))
	return Executed, nil
}

func (s *Service) insertUsers(ctx context.Context) (*models.User, error) {
	var first *models.User
	for _, u := range initialUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}

		roles := make(models.StringArray, 0, len(u.Roles))
		for _, r := range u.Roles {
			roles = append(roles, string(r))
		}

		user := &models.User{
			Email:    u.Email,
			FullName: u.FullName,
			Password: string(hash),
			IsActive: true,
			Roles:    roles,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to insert seed user %s: %w", u.Email, err)
		}
		if first == nil {
			first = user
		}
	}
	return first, nil
}
