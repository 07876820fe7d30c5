package handlers

import (
	"teslo/internal/seed"

	"github.com/gofiber/fiber/v2"
)

// SeedHandler exposes the catalog reset.
type SeedHandler struct {
	seed *seed.Service
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seed *seed.Service) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// RegisterRoutes registers the seed route.
func (h *SeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/seed", h.HandleSeed)
}

// HandleSeed wipes and repopulates users and products.
func (h *SeedHandler) HandleSeed(c *fiber.Ctx) error {
	msg, err := h.seed.Run(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.SendString(msg)
}
