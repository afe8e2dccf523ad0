package ports

import (
	"context"

	"github.com/chatapp/chat-api/internal/core/domain"
)

// MessageRepository defines the persistence contract for chat messages.
type MessageRepository interface {
	// Insert stores a message; id and sent_at are assigned by the store.
	Insert(ctx context.Context, userID int64, content string) (*domain.Message, error)
	// ListWithUsers returns the full message history joined with the sending
	// user, ordered by sent_at ascending.
	ListWithUsers(ctx context.Context) ([]domain.Message, error)
}
