package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type ChatMessageModel struct {
	ID        string         `gorm:"primaryKey"`
	UserID    string         `gorm:"not null;index"`
	SessionID string         `gorm:"not null;index"`
	Role      string         `gorm:"not null"`
	Text      string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

func (ChatMessageModel) TableName() string { return "chat_messages" }

type MoodEntryModel struct {
	ID        string         `gorm:"primaryKey"`
	UserID    string         `gorm:"not null;uniqueIndex:idx_mood_user_day"`
	EntryDate datatypes.Date `gorm:"not null;uniqueIndex:idx_mood_user_day"`
	Mood      int            `gorm:"not null;check:mood_range,mood BETWEEN 1 AND 10"`
	Notes     string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func (MoodEntryModel) TableName() string { return "mood_entries" }

type ReviewModel struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Rating    int       `gorm:"not null;check:rating_range,rating BETWEEN 1 AND 5"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ReviewModel) TableName() string { return "reviews" }

type TherapistModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Address     string `gorm:"not null"`
	City        string `gorm:"not null;index"`
	Latitude    *float64
	Longitude   *float64
	Email       string
	Phone       string
	Verified    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (TherapistModel) TableName() string { return "therapists" }

// chatMetadata is stored in ChatMessageModel.Metadata.
type chatMetadata struct {
	Position int    `json:"position"`
	Category string `json:"category,omitempty"`
}
