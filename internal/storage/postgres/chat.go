package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/zhouzirui/mindshift/backend/internal/model/chat"
)

// Append records a message for userID.
func (s *Store) Append(ctx context.Context, userID string, msg chat.Message) error {
	model := messageToModel(userID, msg)
	return s.db.WithContext(ctx).Create(&model).Error
}

// ListByUser returns the user's messages oldest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]chat.Message, error) {
	var models []ChatMessageModel
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	msgs := make([]chat.Message, 0, len(models))
	for _, model := range models {
		msgs = append(msgs, messageFromModel(model))
	}
	return msgs, nil
}

func messageToModel(userID string, msg chat.Message) ChatMessageModel {
	rawMeta, _ := json.Marshal(chatMetadata{Position: msg.ID, Category: msg.Category})
	return ChatMessageModel{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: msg.SessionID,
		Role:      string(msg.Role),
		Text:      msg.Text,
		Metadata:  rawMeta,
		CreatedAt: msg.CreatedAt,
	}
}

func messageFromModel(m ChatMessageModel) chat.Message {
	var meta chatMetadata
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &meta)
	}
	return chat.Message{
		ID:        meta.Position,
		SessionID: m.SessionID,
		Role:      chat.Role(m.Role),
		Text:      m.Text,
		Category:  meta.Category,
		CreatedAt: m.CreatedAt,
	}
}
