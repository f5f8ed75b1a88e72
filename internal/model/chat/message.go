package chat

import (
	"context"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable turn. ID is its 1-based position in the session log.
type Message struct {
	ID        int       `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists turns of signed-in users.
type Store interface {
	Append(ctx context.Context, userID string, msg Message) error
	// ListByUser returns messages ordered by CreatedAt ascending.
	ListByUser(ctx context.Context, userID string) ([]Message, error)
}
