// Package color derives display colors for tags.
package color

import "github.com/chatlabs/chat-api/internal/domain"

// Default display colors per tag type.
const (
	UserTag  = "#2b6cb0"
	TopicTag = "#38a169"
)

// ForTag returns the display color for a tag.
// A stored override wins; otherwise user tags get UserTag and every other type gets TopicTag.
func ForTag(t *domain.Tag) string {
	if t == nil {
		return TopicTag
	}
	if t.Color != "" {
		return t.Color
	}
	return ForType(t.Type)
}

// ForType returns the fixed color for a tag type.
func ForType(typ domain.TagType) string {
	if typ == domain.TagTypeUser {
		return UserTag
	}
	return TopicTag
}
