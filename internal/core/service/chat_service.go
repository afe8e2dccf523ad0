package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatapp/chat-api/internal/core/domain"
	"github.com/chatapp/chat-api/internal/core/ports"
)

// ChatService persists chat messages and serves the message history.
type ChatService struct {
	messages ports.MessageRepository
}

func NewChatService(messages ports.MessageRepository) *ChatService {
	return &ChatService{messages: messages}
}

// Post stores a message and returns it with the store-assigned id and
// timestamp. Content that is empty after trimming is rejected; the hub drops
// such sends silently, REST callers see a validation error.
func (s *ChatService) Post(ctx context.Context, userID int64, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyMessage
	}

	msg, err := s.messages.Insert(ctx, userID, content)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// History returns every message ever sent, joined with its sender, in
// non-decreasing sent_at order.
func (s *ChatService) History(ctx context.Context) ([]domain.Message, error) {
	return s.messages.ListWithUsers(ctx)
}

var _ ports.ChatService = (*ChatService)(nil)
