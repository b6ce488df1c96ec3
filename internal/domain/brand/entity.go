// internal/domain/brand/entity.go
package brand

import (
	"errors"
	"strings"
	"time"
)

type Icon struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Image is one banner/grid visual of the brand page.
type Image struct {
	Layout string `json:"layout"`
	Image  string `json:"image"`
}

type Brand struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Details string  `json:"details"`
	Icon    Icon    `json:"icon"`
	Images  []Image `json:"images"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Patch struct {
	Name    *string
	Slug    *string
	Details *string
	Icon    *Icon
	Images  *[]Image
}

var (
	ErrNotFound    = errors.New("brand: not found")
	ErrConflict    = errors.New("brand: conflict")
	ErrInvalidID   = errors.New("brand: invalid id")
	ErrInvalidName = errors.New("brand: invalid name")
)

var SearchableFields = []string{"name", "slug", "details"}

func New(name, slug, details string, icon Icon, images []Image) (Brand, error) {
	b := Brand{
		Name:    strings.TrimSpace(name),
		Slug:    strings.TrimSpace(slug),
		Details: strings.TrimSpace(details),
		Icon:    icon,
		Images:  images,
	}
	if b.Name == "" {
		return Brand{}, ErrInvalidName
	}
	return b, nil
}
