package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teslo/internal/models"
	"teslo/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Credentials are not valid"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
		logger:     logger,
	}
}

// RegisterInput is the validated body of a registration request.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50,password"`
	FullName string `json:"fullName" validate:"required,min=1"`
}

// LoginInput is the validated body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// AuthResult is an identity together with a freshly issued token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register hashes the password, stores the user and issues a token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := models.NormalizeEmail(input.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, conflict(fmt.Sprintf("Key (email)=(%s) already exists.", email), nil)
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, s.fail("register lookup", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, s.fail("hash password", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		FullName: input.FullName,
		IsActive: true,
		Roles:    models.StringArray{string(models.RoleUser)},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var dup *repositories.ConflictError
		if errors.As(err, &dup) {
			return nil, conflict(dup.Detail, err)
		}
		return nil, s.fail("register", err)
	}

	return s.issue(user)
}

// Login verifies the credentials and issues a token. Unknown emails and wrong
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
		}
		return nil, unauthorized(invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, unauthorized(invalidCredentials)
	}

	return s.issue(user)
}

// CheckStatus re-issues a token for an identity authenticated upstream.
func (s *AuthService) CheckStatus(user *models.User) (*AuthResult, error) {
	return s.issue(user)
}

// Authenticate resolves the active user a token was issued to.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, unauthorized("Token not valid")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, unauthorized("Token not valid")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, unauthorized("Token not valid")
		}
		return nil, s.fail("authenticate", err)
	}
	if !user.IsActive {
		return nil, unauthorized("User is inactive, talk with an admin")
	}
	return user, nil
}

// GenerateToken signs a token carrying userID.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, s.fail("issue token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) fail(op string, err error) *Error {
	s.logger.Error("auth operation failed", zap.String("op", op), zap.Error(err))
	return internal(err)
}
