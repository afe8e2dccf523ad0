package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chatapp/chat-api/internal/core/domain"
	"github.com/chatapp/chat-api/internal/core/ports"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Insert stores a message. The id and the sent_at timestamp come back from
// the database so the caller broadcasts exactly what was persisted.
func (r *MessageRepository) Insert(ctx context.Context, userID int64, content string) (*domain.Message, error) {
	msg := &domain.Message{UserID: userID, Content: content}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (user_id, content) VALUES ($1, $2) RETURNING id, sent_at`,
		userID, content,
	).Scan(&msg.ID, &msg.SentAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// ListWithUsers returns the full history joined with the sending user,
// oldest first.
func (r *MessageRepository) ListWithUsers(ctx context.Context) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.user_id, m.content, m.sent_at,
		        u.id, u.username, u.email, COALESCE(u.profile_picture_url, ''), u.created_at
		 FROM messages m
		 JOIN users u ON u.id = m.user_id
		 ORDER BY m.sent_at ASC, m.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		var u domain.User
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Content, &m.SentAt,
			&u.ID, &u.Username, &u.Email, &u.ProfilePictureURL, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.User = &u
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

var _ ports.MessageRepository = (*MessageRepository)(nil)
