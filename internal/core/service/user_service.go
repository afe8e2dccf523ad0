package service

import (
	"context"

	"github.com/chatapp/chat-api/internal/core/domain"
	"github.com/chatapp/chat-api/internal/core/ports"
)

// UserService backs the plain user CRUD endpoints. Creation here is not
// gated by authentication; the endpoint predates the OAuth flow and is kept
// for parity with the original surface.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Create(ctx context.Context, username, email string) (*domain.User, error) {
	return s.users.Create(ctx, &domain.User{
		Username: username,
		Email:    email,
	})
}

var _ ports.UserService = (*UserService)(nil)
