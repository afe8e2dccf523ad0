package ports

import (
	"context"

	"github.com/chatapp/chat-api/internal/core/domain"
)

// UserRepository defines the persistence contract for chat users.
type UserRepository interface {
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfilePicture(ctx context.Context, userID int64, url string) error
	List(ctx context.Context) ([]domain.User, error)
}
