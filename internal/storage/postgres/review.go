package postgres

import (
	"context"

	"github.com/zhouzirui/mindshift/backend/internal/model/review"
)

// ReviewStore adapts Store to review.Store.
type ReviewStore struct {
	s *Store
}

func (s *Store) Reviews() *ReviewStore {
	return &ReviewStore{s: s}
}

func (r *ReviewStore) Create(ctx context.Context, rv review.Review) error {
	model := ReviewModel{
		ID:        rv.ID,
		UserID:    rv.UserID,
		Content:   rv.Content,
		Rating:    rv.Rating,
		CreatedAt: rv.CreatedAt,
	}
	return r.s.db.WithContext(ctx).Create(&model).Error
}

func (r *ReviewStore) List(ctx context.Context) ([]review.Review, error) {
	var models []ReviewModel
	if err := r.s.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]review.Review, 0, len(models))
	for _, m := range models {
		out = append(out, review.Review{
			ID:        m.ID,
			UserID:    m.UserID,
			Content:   m.Content,
			Rating:    m.Rating,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
