package review

import (
	"context"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's public feedback on the service.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists reviews.
type Store interface {
	Create(ctx context.Context, r Review) error
	// List returns reviews ordered by CreatedAt descending.
	List(ctx context.Context) ([]Review, error)
}
