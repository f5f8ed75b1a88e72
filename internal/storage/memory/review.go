package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zhouzirui/mindshift/backend/internal/model/review"
)

// ReviewStore keeps reviews in insertion order.
type ReviewStore struct {
	mu      sync.RWMutex
	reviews []review.Review
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{}
}

func (s *ReviewStore) Create(_ context.Context, r review.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, r)
	return nil
}

func (s *ReviewStore) List(_ context.Context) ([]review.Review, error) {
	s.mu.RLock()
	out := append([]review.Review(nil), s.reviews...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
