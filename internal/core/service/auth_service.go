package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chatapp/chat-api/internal/core/domain"
	"github.com/chatapp/chat-api/internal/core/ports"
)

// AuthService implements the Google login flow and session verification.
type AuthService struct {
	oauth  ports.OAuthProvider
	users  ports.UserRepository
	states ports.StateStore
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(
	oauth ports.OAuthProvider,
	users ports.UserRepository,
	states ports.StateStore,
	tokens ports.TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		oauth:  oauth,
		users:  users,
		states: states,
		tokens: tokens,
		log:    log,
	}
}

// LoginURL records a fresh CSRF state and returns the provider consent URL.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	state, err := newState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	if err := s.states.Save(ctx, state); err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}
	return s.oauth.LoginURL(state), nil
}

// HandleCallback completes the OAuth dance: the state must match one we
// handed out, the code is exchanged for a profile, and the profile is bound
// to a local user (created on first login, keyed by provider id). The result
// is a signed session token.
func (s *AuthService) HandleCallback(ctx context.Context, state, code string) (string, *domain.User, error) {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", nil, fmt.Errorf("consume state: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrOAuthStateMismatch
	}

	profile, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.log.Warn().Err(err).Msg("oauth code exchange failed")
		return "", nil, domain.ErrOAuthFailed
	}

	user, err := s.findOrCreate(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Verify validates a session token and loads the user it identifies.
// Returns domain.ErrInvalidToken or domain.ErrUserNotFound respectively.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, claims.UserID)
}

func (s *AuthService) findOrCreate(ctx context.Context, profile *ports.OAuthProfile) (*domain.User, error) {
	user, err := s.users.FindByGoogleID(ctx, profile.ProviderID)
	switch {
	case err == nil:
		// Existing user: refresh the stored picture when it changed.
		if profile.PictureURL != "" && user.ProfilePictureURL != profile.PictureURL {
			if err := s.users.UpdateProfilePicture(ctx, user.ID, profile.PictureURL); err != nil {
				return nil, fmt.Errorf("update profile picture: %w", err)
			}
			user.ProfilePictureURL = profile.PictureURL
		}
		return user, nil

	case err == domain.ErrUserNotFound:
		created, err := s.users.Create(ctx, &domain.User{
			Username:          usernameFor(profile),
			Email:             profile.Email,
			GoogleID:          profile.ProviderID,
			ProfilePictureURL: profile.PictureURL,
		})
		if err != nil {
			return nil, err
		}
		s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("new user registered")
		return created, nil

	default:
		return nil, err
	}
}

// usernameFor picks a display name: the provider name, or the local part of
// the email address when the profile carries no name.
func usernameFor(profile *ports.OAuthProfile) string {
	if profile.Name != "" {
		return profile.Name
	}
	if i := strings.IndexByte(profile.Email, '@'); i > 0 {
		return profile.Email[:i]
	}
	return profile.Email
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ ports.AuthService = (*AuthService)(nil)
