package models

import (
	"strings"
	"time"
)

// Product represents a product in the store.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string         `json:"title" gorm:"uniqueIndex;type:varchar(255);not null"`
	Price       float64        `json:"price" gorm:"not null;default:0"`
	Description *string        `json:"description" gorm:"type:text"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;type:varchar(255);not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Sizes       StringArray    `json:"sizes" gorm:"not null"`
	Gender      string         `json:"gender" gorm:"type:varchar(20);not null"`
	Tags        StringArray    `json:"tags" gorm:"not null"`
	UserID      *string        `json:"-" gorm:"type:varchar(36);index"`
	User        *User          `json:"user,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Images      []ProductImage `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// ProductImage is an image URL owned by exactly one product.
type ProductImage struct {
	ID        uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	URL       string `json:"url" gorm:"type:text;not null"`
	ProductID string `json:"-" gorm:"type:varchar(36);not null;index"`
}

// ProductResponse is the public shape of a product, with images flattened to URLs.
type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description *string  `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	User        *User    `json:"user,omitempty"`
}

// ToResponse flattens the product's image rows into a list of URLs.
func (p *Product) ToResponse() ProductResponse {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}
	sizes := []string(p.Sizes)
	if sizes == nil {
		sizes = []string{}
	}
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       sizes,
		Gender:      p.Gender,
		Tags:        tags,
		Images:      images,
		User:        p.User,
	}
}

// NewProductImages builds image rows from URLs, preserving their order.
func NewProductImages(urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, ProductImage{URL: url})
	}
	return images
}

// NormalizeSlug lowercases s, turns spaces into underscores and drops apostrophes.
func NormalizeSlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "'", "")
}
