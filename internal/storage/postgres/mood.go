package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhouzirui/mindshift/backend/internal/model/mood"
)

// MoodStore is the mood.Store and mood.PatternChecker view of Store.
type MoodStore struct {
	s *Store
}

// Moods returns the mood view of the store.
func (s *Store) Moods() *MoodStore {
	return &MoodStore{s: s}
}

// Upsert creates or updates the entry for (UserID, EntryDate).
func (m *MoodStore) Upsert(ctx context.Context, entry mood.Entry) (mood.Entry, bool, error) {
	day, err := time.Parse(mood.DateLayout, entry.EntryDate)
	if err != nil {
		return mood.Entry{}, false, fmt.Errorf("parse entry date: %w", err)
	}

	var saved MoodEntryModel
	created := false
	err = m.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing MoodEntryModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND entry_date = ?", entry.UserID, datatypes.Date(day)).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Mood = entry.Mood
			existing.Notes = entry.Notes
			existing.UpdatedAt = time.Now().UTC()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			saved = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		model := moodToModel(entry, day)
		if model.ID == "" {
			model.ID = uuid.NewString()
		}
		// A concurrent insert for the same day turns into an update.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"mood", "notes", "updated_at"}),
		}).Create(&model).Error; err != nil {
			return err
		}
		saved = model
		created = true
		return nil
	})
	if err != nil {
		return mood.Entry{}, false, err
	}
	return moodFromModel(saved), created, nil
}

// ListByUser returns the latest limit entries in ascending date order.
func (m *MoodStore) ListByUser(ctx context.Context, userID string, limit int) ([]mood.Entry, error) {
	query := m.s.db.WithContext(ctx).Where("user_id = ?", userID).Order("entry_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []MoodEntryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entries := make([]mood.Entry, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		entries = append(entries, moodFromModel(models[i]))
	}
	return entries, nil
}

// CheckPatterns calls the check_mood_patterns database function.
func (m *MoodStore) CheckPatterns(ctx context.Context, userID string) (mood.Pattern, error) {
	var row struct {
		HasConcerningPattern bool
		DaysWithoutEntry     int
		NegativeMoodCount    int
	}
	if err := m.s.db.WithContext(ctx).
		Raw("SELECT * FROM check_mood_patterns(?, CAST(? AS date))", userID, patternDay(m.s.now())).
		Scan(&row).Error; err != nil {
		return mood.Pattern{}, fmt.Errorf("check_mood_patterns: %w", err)
	}
	return mood.Pattern{
		HasConcerningPattern: row.HasConcerningPattern,
		DaysWithoutEntry:     row.DaysWithoutEntry,
		NegativeMoodCount:    row.NegativeMoodCount,
	}, nil
}

// patternDay is the calendar day entries are stamped with for now.
func patternDay(now time.Time) string {
	return now.Format(mood.DateLayout)
}

func moodToModel(e mood.Entry, day time.Time) MoodEntryModel {
	return MoodEntryModel{
		ID:        e.ID,
		UserID:    e.UserID,
		EntryDate: datatypes.Date(day),
		Mood:      e.Mood,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.CreatedAt,
	}
}

func moodFromModel(m MoodEntryModel) mood.Entry {
	return mood.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		Mood:      m.Mood,
		Notes:     m.Notes,
		EntryDate: time.Time(m.EntryDate).Format(mood.DateLayout),
		CreatedAt: m.CreatedAt,
	}
}
