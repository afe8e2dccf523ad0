package ports

import "context"

// OAuthProfile is the identity returned by the external provider once the
// authorization code dance has completed.
type OAuthProfile struct {
	ProviderID string
	Email      string
	Name       string
	PictureURL string
}

// OAuthProvider abstracts the external identity provider. The core never
// implements the OAuth protocol itself; it only consumes the outcome.
type OAuthProvider interface {
	// LoginURL builds the provider consent URL for the given CSRF state.
	LoginURL(state string) string
	// Exchange trades an authorization code for the user's profile.
	Exchange(ctx context.Context, code string) (*OAuthProfile, error)
}
