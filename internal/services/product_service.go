package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teslo/internal/models"
	"teslo/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPageSize = 10

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateProductInput is the validated body of a create request.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description *string  `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes" validate:"required,min=1,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductInput is a partial update. Nil fields are left unchanged.
// A nil Images keeps the current images; a non-nil one, even empty, replaces them.
type UpdateProductInput struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// Pagination selects a page of a listing.
type Pagination struct {
	Limit  int `query:"limit" validate:"omitempty,min=1"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// Create stores a new product owned by user, images included.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput, user *models.User) (*models.ProductResponse, error) {
	slug := input.Slug
	if slug == "" {
		slug = input.Title
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	product := &models.Product{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Slug:        models.NormalizeSlug(slug),
		Stock:       input.Stock,
		Sizes:       models.StringArray(input.Sizes),
		Gender:      input.Gender,
		Tags:        models.StringArray(tags),
		Images:      models.NewProductImages(input.Images),
	}
	if user != nil {
		product.UserID = &user.ID
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, s.handleStoreError(err)
	}
	product.User = user

	publish(s.publisher, s.logger, EventProductCreated, eventFor(product))
	resp := product.ToResponse()
	return &resp, nil
}

// FindAll returns a page of products. Zero values fall back to limit 10, offset 0.
func (s *ProductService) FindAll(ctx context.Context, page Pagination) ([]models.ProductResponse, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, s.handleStoreError(err)
	}

	out := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out, nil
}

// FindOne resolves term as an ID when it is a UUID, otherwise as a title
// (case-insensitive) or a lowercased slug.
func (s *ProductService) FindOne(ctx context.Context, term string) (*models.Product, error) {
	var (
		product *models.Product
		err     error
	)
	if _, parseErr := uuid.Parse(term); parseErr == nil {
		product, err = s.repo.GetByID(ctx, term)
	} else {
		product, err = s.repo.GetByTitleOrSlug(ctx, term, strings.ToLower(term))
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("Product with term %q not found", term), err)
		}
		return nil, s.handleStoreError(err)
	}
	return product, nil
}

// FindOnePlain is FindOne with images flattened to URLs.
func (s *ProductService) FindOnePlain(ctx context.Context, term string) (*models.ProductResponse, error) {
	product, err := s.FindOne(ctx, term)
	if err != nil {
		return nil, err
	}
	resp := product.ToResponse()
	return &resp, nil
}

// Update merges input onto the stored product and, when input.Images is set,
// replaces its images. Both land in a single transaction or not at all. The
// returned product is read back from the store after commit.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput, user *models.User) (*models.ProductResponse, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("Product with id: %s not found", id), err)
		}
		return nil, s.handleStoreError(err)
	}

	applyUpdate(product, input)
	if user != nil {
		product.UserID = &user.ID
	}

	if err := s.repo.UpdateWithImages(ctx, product, input.Images, input.Images != nil); err != nil {
		return nil, s.handleStoreError(err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleStoreError(err)
	}

	publish(s.publisher, s.logger, EventProductUpdated, eventFor(updated))
	resp := updated.ToResponse()
	return &resp, nil
}

// applyUpdate copies the present fields of input onto p and recomputes the slug.
// An explicit slug in the input takes precedence over the title.
func applyUpdate(p *models.Product, input UpdateProductInput) {
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Sizes != nil {
		p.Sizes = models.StringArray(input.Sizes)
	}
	if input.Gender != nil {
		p.Gender = *input.Gender
	}
	if input.Tags != nil {
		p.Tags = models.StringArray(input.Tags)
	}

	if input.Slug != nil {
		p.Slug = models.NormalizeSlug(*input.Slug)
	} else {
		p.Slug = models.NormalizeSlug(p.Title)
	}
}

// Remove deletes the product matching id and its images.
func (s *ProductService) Remove(ctx context.Context, id string) error {
	product, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(fmt.Sprintf("Product with id: %s not found", id), err)
		}
		return s.handleStoreError(err)
	}

	publish(s.publisher, s.logger, EventProductDeleted, ProductEvent{ProductID: product.ID})
	return nil
}

// DeleteAll removes every product. Used by seeding.
func (s *ProductService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return s.handleStoreError(err)
	}
	return nil
}

// handleStoreError turns a repository error into a service error. Conflicts
// keep the store detail; anything else is logged and made opaque.
func (s *ProductService) handleStoreError(err error) error {
	var dup *repositories.ConflictError
	if errors.As(err, &dup) {
		return conflict(dup.Detail, err)
	}
	s.logger.Error("product store failure", zap.Error(err))
	return internal(err)
}

func eventFor(p *models.Product) ProductEvent {
	event := ProductEvent{ProductID: p.ID, Title: p.Title, Slug: p.Slug}
	if p.UserID != nil {
		event.UserID = *p.UserID
	}
	return event
}
