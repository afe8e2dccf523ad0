package ports

import "context"

// StateStore keeps short-lived OAuth state nonces between the login redirect
// and the provider callback. States are single use: Consume reports whether
// the state existed and removes it atomically.
type StateStore interface {
	Save(ctx context.Context, state string) error
	Consume(ctx context.Context, state string) (bool, error)
}
