// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	BrandID     string `json:"brandId"`

	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice"`
	Stock     int     `json:"stock"`

	FeaturedImg string   `json:"featuredImg"`
	Gallery     []string `json:"gallery"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Patch represents partial updates; nil = no change.
type Patch struct {
	Name        *string
	Slug        *string
	Description *string
	BrandID     *string
	Price       *float64
	SalePrice   *float64
	Stock       *int
	FeaturedImg *string
	Gallery     *[]string
}

var (
	ErrNotFound     = errors.New("product: not found")
	ErrConflict     = errors.New("product: conflict")
	ErrInvalidID    = errors.New("product: invalid id")
	ErrInvalidName  = errors.New("product: invalid name")
	ErrInvalidPrice = errors.New("product: invalid price")
)

var SearchableFields = []string{"name", "slug", "description"}

func New(name, slug, description, brandID string, price, salePrice float64, stock int) (Product, error) {
	p := Product{
		Name:        strings.TrimSpace(name),
		Slug:        strings.TrimSpace(slug),
		Description: strings.TrimSpace(description),
		BrandID:     strings.TrimSpace(brandID),
		Price:       price,
		SalePrice:   salePrice,
		Stock:       stock,
	}
	if p.Name == "" {
		return Product{}, ErrInvalidName
	}
	if p.Price < 0 || p.SalePrice < 0 {
		return Product{}, ErrInvalidPrice
	}
	return p, nil
}
