package repositories

import (
	"context"
	"errors"
	"fmt"

	"teslo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// withRelations eagerly loads the owner and the images, oldest image first.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("product_images.id ASC")
		})
}

// List retrieves a page of products ordered by title.
func (r *GORMProductRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := withRelations(r.db.WithContext(ctx)).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.getOne(ctx, r.db.WithContext(ctx).Where("products.id = ?", id), "ID "+id)
}

// GetByTitleOrSlug retrieves a product whose upper-cased title equals
// UPPER(title) or whose slug equals slug.
func (r *GORMProductRepository) GetByTitleOrSlug(ctx context.Context, title, slug string) (*models.Product, error) {
	query := r.db.WithContext(ctx).Where("UPPER(products.title) = UPPER(?) OR products.slug = ?", title, slug)
	return r.getOne(ctx, query, "title or slug "+title)
}

func (r *GORMProductRepository) getOne(ctx context.Context, query *gorm.DB, what string) (*models.Product, error) {
	var product models.Product
	if err := withRelations(query).First(&product).Error; err != nil {
		if errors.Is(translateError(err), ErrNotFound) {
			return nil, fmt.Errorf("product with %s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by %s: %w", what, err)
	}
	return &product, nil
}

// Create inserts the product together with its image rows.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	// Only the image rows are inserted alongside; the owner already exists.
	err := r.db.WithContext(ctx).Omit("User").Create(product).Error
	if err != nil {
		return r.writeError("create product", err)
	}
	return nil
}

// UpdateWithImages saves the product's scalar fields and optionally replaces
// its images. Either every statement commits or none does.
func (r *GORMProductRepository) UpdateWithImages(ctx context.Context, product *models.Product, images []string, replaceImages bool) error {
	record := *product
	record.User = nil
	record.Images = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceImages {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
		}

		res := tx.Omit(clause.Associations).Save(&record)
		if res.Error != nil {
			return res.Error
		}

		if replaceImages && len(images) > 0 {
			rows := models.NewProductImages(images)
			for i := range rows {
				rows[i].ProductID = product.ID
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.writeError("update product "+product.ID, err)
	}
	return nil
}

// Delete removes a product and its images.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every product and image.
func (r *GORMProductRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Product{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func (r *GORMProductRepository) writeError(op string, err error) error {
	err = translateError(err)
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
