package therapist

import (
	"context"
	"slices"
)

// Store exposes directory retrieval.
type Store interface {
	// ListVerified returns verified therapists located in one of cities.
	ListVerified(ctx context.Context, cities []string) ([]Therapist, error)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Therapist
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied therapists.
func NewMemoryStore(items []Therapist) *MemoryStore {
	return &MemoryStore{items: append([]Therapist(nil), items...)}
}

func (s *MemoryStore) ListVerified(_ context.Context, cities []string) ([]Therapist, error) {
	out := make([]Therapist, 0, len(s.items))
	for _, item := range s.items {
		if item.Verified && slices.Contains(cities, item.City) {
			out = append(out, item)
		}
	}
	return out, nil
}
