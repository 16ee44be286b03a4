package api

import (
	"time"

	"github.com/chatlabs/chat-api/internal/color"
	"github.com/chatlabs/chat-api/internal/domain"
)

// TagView is the wire form of a tag.
type TagView struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Tag       string    `json:"tag" doc:"Canonical tag value"`
	Type      string    `json:"type" doc:"Tag type: user or topic"`
	Color     string    `json:"color" doc:"Display color: stored override or derived from type"`
	CreatedAt time.Time `json:"createdAt" doc:"Creation time"`
}

// MessageView is the wire form of a message with its tags.
type MessageView struct {
	ID        string    `json:"id" doc:"Message ID"`
	Text      string    `json:"text" doc:"Message text"`
	Tags      []TagView `json:"tags" doc:"Tags ordered by value"`
	Timestamp time.Time `json:"timestamp" doc:"Creation time"`
	SenderID  string    `json:"senderId" doc:"Sender reference"`
	Status    string    `json:"status" doc:"Delivery status: sent, delivered or read"`
}

func newTagView(t *domain.Tag) TagView {
	return TagView{
		ID:        t.ID,
		Tag:       t.Value,
		Type:      string(t.Type),
		Color:     color.ForTag(t),
		CreatedAt: t.CreatedAt,
	}
}

func newTagViews(tags []*domain.Tag) []TagView {
	views := make([]TagView, len(tags))
	for i, t := range tags {
		views[i] = newTagView(t)
	}
	return views
}

func newMessageView(m *domain.Message) MessageView {
	return MessageView{
		ID:        m.ID,
		Text:      m.Text,
		Tags:      newTagViews(m.Tags),
		Timestamp: m.CreatedAt,
		SenderID:  m.SenderID,
		Status:    string(m.Status),
	}
}
