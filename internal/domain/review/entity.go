// internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrNotFound      = errors.New("review: not found")
	ErrInvalidID     = errors.New("review: invalid id")
	ErrInvalidTarget = errors.New("review: invalid productId/userId")
	ErrInvalidRating = errors.New("review: rating must be 1..5")
)

func New(productID, userID string, rating int, comment string) (Review, error) {
	r := Review{
		ProductID: strings.TrimSpace(productID),
		UserID:    strings.TrimSpace(userID),
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if r.ProductID == "" || r.UserID == "" {
		return Review{}, ErrInvalidTarget
	}
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	return r, nil
}
