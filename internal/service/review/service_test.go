package review_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	reviewservice "github.com/zhouzirui/mindshift/backend/internal/service/review"
	"github.com/zhouzirui/mindshift/backend/internal/storage/memory"
)

func TestSubmitValidation(t *testing.T) {
	store := memory.NewReviewStore()
	ctx := context.Background()

	anon := reviewservice.NewService(store, identity.Static(""), nil)
	if _, err := anon.Submit(ctx, "great", 5); !errors.Is(err, reviewservice.ErrSignInRequired) {
		t.Fatalf("expected ErrSignInRequired, got %v", err)
	}

	svc := reviewservice.NewService(store, identity.Static("u1"), nil)
	if _, err := svc.Submit(ctx, "  ", 5); !errors.Is(err, reviewservice.ErrContentRequired) {
		t.Fatalf("expected ErrContentRequired, got %v", err)
	}
	for _, rating := range []int{0, 6} {
		if _, err := svc.Submit(ctx, "great", rating); !errors.Is(err, reviewservice.ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	store := memory.NewReviewStore()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	svc := reviewservice.NewService(store, identity.Static("u1"), func() time.Time { return now })
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "first", 4); err != nil {
		t.Fatalf("submit: %v", err)
	}
	now = now.Add(time.Hour)
	if _, err := svc.Submit(ctx, "second", 5); err != nil {
		t.Fatalf("submit: %v", err)
	}

	reviews, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(reviews) != 2 || reviews[0].Content != "second" || reviews[0].UserID != "u1" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}
