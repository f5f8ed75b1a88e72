package chat

import "time"

// Session is a single support conversation. UserID is empty for anonymous
// visitors, whose turns are never persisted.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
