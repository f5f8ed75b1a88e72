package mood

import (
	"context"
	"time"
)

const (
	MinValue = 1
	MaxValue = 10

	// DateLayout is the calendar-day key used for entryDate.
	DateLayout = "2006-01-02"
)

// Entry is one mood log per user per calendar day.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      int       `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	EntryDate string    `json:"entryDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pattern is the result of the server-side pattern check. Its derivation is
// owned by the store; callers only read it.
type Pattern struct {
	HasConcerningPattern bool `json:"hasConcerningPattern"`
	DaysWithoutEntry     int  `json:"daysWithoutEntry"`
	NegativeMoodCount    int  `json:"negativeMoodCount"`
}

// Trend is recomputed from the history on every fetch.
type Trend struct {
	HasDeclineAlert    bool `json:"hasDeclineAlert"`
	ConsecutiveDecline bool `json:"consecutiveDecline"`
	AggregateDrop      bool `json:"aggregateDrop"`
}

// Option maps a mood value to its display label.
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Options lists the selectable moods from best to worst.
func Options() []Option {
	return []Option{
		{Label: "Excited", Value: 10, Color: "#22c55e"},
		{Label: "Happy", Value: 9, Color: "#4ade80"},
		{Label: "Calm", Value: 8, Color: "#60a5fa"},
		{Label: "Normal", Value: 7, Color: "#93c5fd"},
		{Label: "Exhausted", Value: 6, Color: "#fbbf24"},
		{Label: "Frustrated", Value: 5, Color: "#fb923c"},
		{Label: "Sad", Value: 4, Color: "#f87171"},
		{Label: "Anxious", Value: 3, Color: "#ef4444"},
		{Label: "Stressed", Value: 2, Color: "#dc2626"},
		{Label: "Depressed", Value: 1, Color: "#991b1b"},
	}
}

// Label returns the display label of a mood value, or "" when out of range.
func Label(value int) string {
	for _, opt := range Options() {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

// Store persists mood entries keyed by user and calendar day.
type Store interface {
	// Upsert inserts the entry or updates the existing one for the same
	// UserID and EntryDate. created reports which happened.
	Upsert(ctx context.Context, entry Entry) (saved Entry, created bool, err error)
	// ListByUser returns at most limit entries ordered by EntryDate ascending.
	// A non-positive limit returns everything.
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
}

// PatternChecker runs the server-side pattern procedure for a user.
type PatternChecker interface {
	CheckPatterns(ctx context.Context, userID string) (Pattern, error)
}
