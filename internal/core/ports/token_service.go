package ports

import (
	"time"

	"github.com/chatapp/chat-api/internal/core/domain"
)

// Claims is the decoded identity carried by a session token.
type Claims struct {
	UserID   int64
	Username string
	Email    string
	IssuedAt time.Time
	Expiry   time.Time
}

// TokenService issues and validates signed session tokens. Tokens are
// stateless bearer credentials: there is no revocation list, so a leaked
// token stays usable until its expiry.
type TokenService interface {
	// Issue produces a signed token embedding the user's identity.
	Issue(user *domain.User) (string, error)
	// Validate verifies signature and expiry and returns the embedded
	// claims, or domain.ErrInvalidToken on any failure.
	Validate(token string) (*Claims, error)
}
