package ports

import (
	"context"

	"github.com/chatapp/chat-api/internal/core/domain"
)

// AuthService drives the OAuth login flow and session verification.
type AuthService interface {
	// LoginURL generates a fresh state nonce, records it, and returns the
	// provider consent URL to redirect the browser to.
	LoginURL(ctx context.Context) (string, error)
	// HandleCallback validates the state, exchanges the code, finds or
	// creates the user, and returns a signed session token.
	HandleCallback(ctx context.Context, state, code string) (string, *domain.User, error)
	// Verify validates a session token and loads the user it refers to.
	Verify(ctx context.Context, token string) (*domain.User, error)
}
