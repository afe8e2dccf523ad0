package hub

import (
	"encoding/json"
	"time"

	"github.com/chatapp/chat-api/internal/core/domain"
)

// Event type discriminators, mirrored by the frontend client.
const (
	EventUserJoined     = "user_joined"
	EventReceiveMessage = "receive_message"
)

// inboundFrame is the only client-to-server frame: a message send.
type inboundFrame struct {
	Content string `json:"content"`
}

// UserJoinedEvent announces a new participant. It is delivered to every live
// connection, the joining one included, so all clients observe the same
// stream of events.
type UserJoinedEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// ReceiveMessageEvent carries a persisted chat message. The sender receives
// its own message echoed back through the same channel rather than rendering
// it optimistically.
type ReceiveMessageEvent struct {
	Type     string    `json:"type"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sentAt"`
}

func marshalUserJoined(username string) ([]byte, error) {
	return json.Marshal(UserJoinedEvent{Type: EventUserJoined, Username: username})
}

func marshalReceiveMessage(username, email string, msg *domain.Message) ([]byte, error) {
	return json.Marshal(ReceiveMessageEvent{
		Type:     EventReceiveMessage,
		Username: username,
		Email:    email,
		Content:  msg.Content,
		SentAt:   msg.SentAt,
	})
}
