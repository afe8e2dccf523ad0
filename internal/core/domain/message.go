package domain

import "time"

// Message is a single chat record. SentAt is assigned by the store at insert
// time; messages are never mutated or deleted after creation.
type Message struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"userId"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`

	// User is populated on joined reads (message history).
	User *User `json:"user,omitempty"`
}
