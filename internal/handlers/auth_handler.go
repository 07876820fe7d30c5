package handlers

import (
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// AuthResponse is the user's public fields plus a fresh token.
type AuthResponse struct {
	*models.User
	Token string `json:"token"`
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/check-auth-status", middleware.Auth(h.authService), h.HandleCheckStatus)
	authRoutes.Get("/private", middleware.Auth(h.authService), h.HandlePrivate)
	authRoutes.Get("/private2", middleware.Auth(h.authService, models.RoleUser, models.RoleSuperUser), h.HandlePrivate)
	authRoutes.Get("/private3", middleware.Auth(h.authService, models.RoleUser), h.HandlePrivate)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}
	if ok, err := validate(c, h.validate, &input); !ok {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{User: result.User, Token: result.Token})
}

// HandleLogin verifies credentials and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}
	if ok, err := validate(c, h.validate, &input); !ok {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(AuthResponse{User: result.User, Token: result.Token})
}

// HandleCheckStatus returns the caller with a renewed token.
func (h *AuthHandler) HandleCheckStatus(c *fiber.Ctx) error {
	result, err := h.authService.CheckStatus(middleware.CurrentUser(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(AuthResponse{User: result.User, Token: result.Token})
}

// HandlePrivate echoes the caller back on the guarded test routes.
func (h *AuthHandler) HandlePrivate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":   true,
		"user": middleware.CurrentUser(c),
	})
}
