package handlers

import (
	"errors"
	"fmt"

	"teslo/internal/files"
	"teslo/internal/problem"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FilesHandler handles product image uploads and downloads.
type FilesHandler struct {
	store  *files.Store
	logger *zap.Logger
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(store *files.Store, logger *zap.Logger) *FilesHandler {
	return &FilesHandler{store: store, logger: logger}
}

// RegisterRoutes registers the file routes.
func (h *FilesHandler) RegisterRoutes(router fiber.Router) {
	fileRoutes := router.Group("/files")
	fileRoutes.Post("/product", h.HandleUploadProductImage)
	fileRoutes.Get("/product/:imageName", h.HandleGetProductImage)
}

// HandleUploadProductImage stores the multipart "file" and returns its URL.
func (h *FilesHandler) HandleUploadProductImage(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		header = nil
	}

	accepted, err := files.Filter(header)
	if err != nil || !accepted {
		return problem.Write(c, fiber.StatusBadRequest, "Make sure that the file is an image")
	}

	secureURL, err := h.store.Save(header)
	if err != nil {
		h.logger.Error("failed to store upload", zap.String("filename", header.Filename), zap.Error(err))
		return problem.Write(c, fiber.StatusInternalServerError, "Unexpected error, check server logs")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"secureUrl": secureURL})
}

// HandleGetProductImage serves a stored image.
func (h *FilesHandler) HandleGetProductImage(c *fiber.Ctx) error {
	name := c.Params("imageName")
	path, err := h.store.Path(name)
	if err != nil {
		if errors.Is(err, files.ErrImageNotFound) {
			return problem.Write(c, fiber.StatusNotFound, fmt.Sprintf("No product found with image %s", name))
		}
		return handleError(c, err)
	}
	return c.SendFile(path)
}
