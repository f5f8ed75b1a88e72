package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	analysis "github.com/zhouzirui/mindshift/backend/internal/analysis/mood"
	"github.com/zhouzirui/mindshift/backend/internal/identity"
	model "github.com/zhouzirui/mindshift/backend/internal/model/mood"
	"github.com/zhouzirui/mindshift/backend/internal/observability"
)

const defaultHistoryLimit = 30

var (
	ErrMoodRequired   = errors.New("please select a mood")
	ErrSignInRequired = errors.New("you must be signed in to track your mood")
	ErrInvalidMood    = fmt.Errorf("mood must be between %d and %d", model.MinValue, model.MaxValue)
)

// LogInput is a mood submission. Mood is nil when nothing was selected.
type LogInput struct {
	Mood  *int   `json:"mood"`
	Notes string `json:"notes"`
}

// LogResult reports the stored entry and whether it was new for the day.
type LogResult struct {
	Entry   model.Entry `json:"entry"`
	Created bool        `json:"created"`
}

// Overview is everything the mood tracker shows.
type Overview struct {
	History []model.Entry  `json:"history"`
	Trend   model.Trend    `json:"trend"`
	Pattern *model.Pattern `json:"pattern,omitempty"`
	Alert   string         `json:"alert,omitempty"`
}

// Service validates and stores mood logs.
type Service struct {
	store    model.Store
	patterns model.PatternChecker
	identity identity.Provider
	now      func() time.Time
}

// NewService creates a Service. patterns may be nil.
func NewService(store model.Store, patterns model.PatternChecker, ident identity.Provider, now func() time.Time) *Service {
	if ident == nil {
		ident = identity.ContextProvider{}
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, patterns: patterns, identity: ident, now: now}
}

// Log records today's mood for the current user, replacing an earlier
// entry for the same day.
func (s *Service) Log(ctx context.Context, in LogInput) (LogResult, error) {
	if in.Mood == nil {
		return LogResult{}, ErrMoodRequired
	}
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return LogResult{}, ErrSignInRequired
	}
	if *in.Mood < model.MinValue || *in.Mood > model.MaxValue {
		return LogResult{}, ErrInvalidMood
	}

	now := s.now()
	entry := model.Entry{
		UserID:    userID,
		Mood:      *in.Mood,
		Notes:     strings.TrimSpace(in.Notes),
		EntryDate: now.Format(model.DateLayout),
		CreatedAt: now.UTC(),
	}
	saved, created, err := s.store.Upsert(ctx, entry)
	if err != nil {
		return LogResult{}, fmt.Errorf("save mood entry: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("mood: entry saved",
		"user_id", userID, "entry_date", saved.EntryDate, "created", created)
	return LogResult{Entry: saved, Created: created}, nil
}

// Overview loads the history with its derived trend and pattern alert.
func (s *Service) Overview(ctx context.Context, limit int) (Overview, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return Overview{}, ErrSignInRequired
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	history, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		return Overview{}, fmt.Errorf("list mood entries: %w", err)
	}

	out := Overview{
		History: history,
		Trend:   analysis.AnalyzeTrend(history),
	}

	if s.patterns != nil {
		pattern, err := s.patterns.CheckPatterns(ctx, userID)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("mood: pattern check failed", "user_id", userID, "error", err)
		} else {
			out.Pattern = &pattern
			out.Alert = analysis.AlertMessage(&pattern)
		}
	}
	return out, nil
}

// Options lists the selectable moods.
func (s *Service) Options() []model.Option {
	return model.Options()
}
