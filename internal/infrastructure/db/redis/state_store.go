package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatapp/chat-api/internal/core/ports"
)

const stateTTL = 10 * time.Minute

// StateStore keeps OAuth CSRF state nonces in Redis.
// Key format: oauth_state:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Save records a state nonce. Entries expire after stateTTL, bounding how
// long a login redirect stays redeemable.
func (s *StateStore) Save(ctx context.Context, state string) error {
	if err := s.client.Set(ctx, s.key(state), "1", stateTTL).Err(); err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	return nil
}

// Consume reports whether the state was previously saved and deletes it in
// the same call, so a state can only be redeemed once.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(state)).Result()
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return n > 0, nil
}

func (s *StateStore) key(state string) string {
	return "oauth_state:" + state
}

var _ ports.StateStore = (*StateStore)(nil)
