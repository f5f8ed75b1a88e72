package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	model "github.com/zhouzirui/mindshift/backend/internal/model/review"
)

var (
	ErrSignInRequired  = errors.New("you must be signed in to leave a review")
	ErrContentRequired = errors.New("please fill all fields")
	ErrInvalidRating   = fmt.Errorf("rating must be between %d and %d", model.MinRating, model.MaxRating)
)

// Service accepts and lists user reviews.
type Service struct {
	store    model.Store
	identity identity.Provider
	now      func() time.Time
}

func NewService(store model.Store, ident identity.Provider, now func() time.Time) *Service {
	if ident == nil {
		ident = identity.ContextProvider{}
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, identity: ident, now: now}
}

// Submit stores a review from the current user.
func (s *Service) Submit(ctx context.Context, content string, rating int) (model.Review, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return model.Review{}, ErrSignInRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Review{}, ErrContentRequired
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return model.Review{}, ErrInvalidRating
	}

	r := model.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Rating:    rating,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		return model.Review{}, fmt.Errorf("save review: %w", err)
	}
	return r, nil
}

// List returns reviews newest first.
func (s *Service) List(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
