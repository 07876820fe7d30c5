package repositories

import (
	"context"

	"teslo/internal/models"
)

// ProductRepository defines the interface for product data access.
// Every read preloads the owner and the images in storage order.
type ProductRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByTitleOrSlug matches the title case-insensitively or the slug exactly.
	GetByTitleOrSlug(ctx context.Context, title, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// UpdateWithImages saves the scalar fields of product and, when replaceImages
	// is set, swaps its image rows for images, all in one transaction.
	UpdateWithImages(ctx context.Context, product *models.Product, images []string, replaceImages bool) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
