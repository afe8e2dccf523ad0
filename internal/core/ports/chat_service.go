package ports

import (
	"context"

	"github.com/chatapp/chat-api/internal/core/domain"
)

// ChatService persists and reads chat messages.
type ChatService interface {
	// Post stores a message for the given user. Empty or whitespace-only
	// content is rejected with domain.ErrEmptyMessage.
	Post(ctx context.Context, userID int64, content string) (*domain.Message, error)
	// History returns the full ordered message history.
	History(ctx context.Context) ([]domain.Message, error)
}

// UserService exposes the unauthenticated user CRUD surface.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, username, email string) (*domain.User, error)
}
