// Package memory holds in-process stores used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zhouzirui/mindshift/backend/internal/model/chat"
)

// ChatStore keeps persisted chat turns per user.
type ChatStore struct {
	mu       sync.RWMutex
	messages map[string][]chat.Message
}

func NewChatStore() *ChatStore {
	return &ChatStore{messages: make(map[string][]chat.Message)}
}

func (s *ChatStore) Append(_ context.Context, userID string, msg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[userID] = append(s.messages[userID], msg)
	return nil
}

func (s *ChatStore) ListByUser(_ context.Context, userID string) ([]chat.Message, error) {
	s.mu.RLock()
	out := append([]chat.Message(nil), s.messages[userID]...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
