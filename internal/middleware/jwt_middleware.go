package middleware

import (
	"fmt"
	"strings"

	"teslo/internal/models"
	"teslo/internal/problem"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

// Auth is a Fiber middleware that resolves the bearer token to an active user
// and, when roles are given, requires the user to hold at least one of them.
func Auth(authService *services.AuthService, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return problem.Write(c, fiber.StatusUnauthorized, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
			return problem.Write(c, fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			if services.KindOf(err) == services.KindUnauthorized {
				return problem.Write(c, fiber.StatusUnauthorized, err.Error())
			}
			return problem.Write(c, fiber.StatusInternalServerError, err.Error())
		}

		if len(roles) > 0 && !user.HasRole(roles...) {
			return problem.Write(c, fiber.StatusForbidden,
				fmt.Sprintf("User %s need a valid role: %v", user.FullName, roles))
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil on unguarded routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
