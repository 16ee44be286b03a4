package domain

import "time"

// TagType classifies a tag.
type TagType string

// Tag types.
const (
	TagTypeUser  TagType = "user"
	TagTypeTopic TagType = "topic"
)

// Valid reports whether t is a known tag type.
func (t TagType) Valid() bool {
	return t == TagTypeUser || t == TagTypeTopic
}

// Tag is the canonical record for a tag value.
// Tags are shared by messages and suggestions; Value is unique across all tags.
type Tag struct {
	ID        string    `json:"id"`
	Type      TagType   `json:"type"`
	Value     string    `json:"value"`
	Display   string    `json:"display"`
	Color     string    `json:"color,omitempty"` // Optional display override
	CreatedAt time.Time `json:"created_at"`
}

// TagRef is a free-form reference to a tag as supplied by a client.
type TagRef struct {
	Name string
	Type TagType
}

// TagSuggestion associates a trigger character with a tag value for autocomplete.
type TagSuggestion struct {
	Trigger   string    `json:"trigger"`
	Value     string    `json:"value"`
	Type      TagType   `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
