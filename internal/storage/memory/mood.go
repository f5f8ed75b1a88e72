package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/mindshift/backend/internal/model/mood"
)

const (
	patternGapDays       = 3
	patternRecentEntries = 7
	patternNegativeMood  = 4
	patternNegativeCount = 3
)

// MoodStore keeps one entry per user per day and evaluates the same pattern
// rules as the Postgres check_mood_patterns function.
type MoodStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]mood.Entry
	now     func() time.Time
}

// NewMoodStore creates a store. now defaults to time.Now.
func NewMoodStore(now func() time.Time) *MoodStore {
	if now == nil {
		now = time.Now
	}
	return &MoodStore{entries: make(map[string]map[string]mood.Entry), now: now}
}

func (s *MoodStore) Upsert(_ context.Context, entry mood.Entry) (mood.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.entries[entry.UserID]
	if !ok {
		byDate = make(map[string]mood.Entry)
		s.entries[entry.UserID] = byDate
	}

	if existing, ok := byDate[entry.EntryDate]; ok {
		existing.Mood = entry.Mood
		existing.Notes = entry.Notes
		byDate[entry.EntryDate] = existing
		return existing, false, nil
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	byDate[entry.EntryDate] = entry
	return entry, true, nil
}

func (s *MoodStore) ListByUser(_ context.Context, userID string, limit int) ([]mood.Entry, error) {
	s.mu.RLock()
	out := make([]mood.Entry, 0, len(s.entries[userID]))
	for _, entry := range s.entries[userID] {
		out = append(out, entry)
	}
	s.mu.RUnlock()

	// DateLayout sorts lexicographically in calendar order.
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate < out[j].EntryDate })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *MoodStore) CheckPatterns(ctx context.Context, userID string) (mood.Pattern, error) {
	entries, err := s.ListByUser(ctx, userID, 0)
	if err != nil {
		return mood.Pattern{}, err
	}
	if len(entries) == 0 {
		return mood.Pattern{}, nil
	}

	var pattern mood.Pattern
	last, err := time.Parse(mood.DateLayout, entries[len(entries)-1].EntryDate)
	if err == nil {
		today, _ := time.Parse(mood.DateLayout, s.now().Format(mood.DateLayout))
		if gap := int(today.Sub(last).Hours() / 24); gap > 0 {
			pattern.DaysWithoutEntry = gap
		}
	}

	recent := entries
	if len(recent) > patternRecentEntries {
		recent = recent[len(recent)-patternRecentEntries:]
	}
	for _, entry := range recent {
		if entry.Mood <= patternNegativeMood {
			pattern.NegativeMoodCount++
		}
	}

	pattern.HasConcerningPattern = pattern.DaysWithoutEntry >= patternGapDays ||
		pattern.NegativeMoodCount >= patternNegativeCount
	return pattern, nil
}
