package domain

import "time"

// MessageStatus is the delivery state of a chat message.
type MessageStatus string

// Message statuses.
const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// Valid reports whether s is a known status.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusSent, MessageStatusDelivered, MessageStatusRead:
		return true
	}
	return false
}

// Message is a single chat message.
// Tags are hydrated from message_tags on read and are ordered by value.
type Message struct {
	ID        string        `json:"id"`
	SenderID  string        `json:"sender_id"` // Opaque reference to a user
	Text      string        `json:"text"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"` // Immutable once set
	Tags      []*Tag        `json:"tags"`
}

// MessageTag is the join row between a message and a tag.
// It has no identity beyond the pair.
type MessageTag struct {
	MessageID string `json:"message_id"`
	TagID     string `json:"tag_id"`
}
