// Package store defines the persistence contracts for the chat API.
package store

import (
	"context"
	"database/sql"

	"github.com/chatlabs/chat-api/internal/domain"
)

// Querier is the parameterized-query executor the store issues statements to.
// Both *sql.DB and *sql.Tx satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MaxSuggestions caps the number of tags returned by a suggestion lookup.
const MaxSuggestions = 25

// SuggestionFilter narrows a suggestion lookup. Empty fields do not filter.
type SuggestionFilter struct {
	Trigger string // Exact trigger match
	Search  string // Case-insensitive substring of the tag value
}

// TagUpdate is a partial update of a tag. Nil fields are left unchanged.
type TagUpdate struct {
	Value *string
	Type  *domain.TagType
	Color *string // Empty string clears the override
}

// TagUsage is a tag together with the number of messages linking to it.
type TagUsage struct {
	Tag      *domain.Tag
	Messages int
}

// Stats summarizes table contents for inspection tooling.
type Stats struct {
	Messages          int
	Tags              int
	MessageTags       int
	Suggestions       int
	OrphanSuggestions int // Suggestions whose value has no tag row
	UnreferencedTags  int // Tags with neither links nor suggestions
	MostLinked        []TagUsage
}

// Store defines every persistence operation the services rely on.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Tags
	ResolveTag(ctx context.Context, name string, typ domain.TagType) (*domain.Tag, error)
	GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	GetTagByValue(ctx context.Context, value string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, tagID string, upd TagUpdate) (*domain.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error

	// Messages
	ListMessages(ctx context.Context, params PageParams) ([]*domain.Message, error)
	GetMessage(ctx context.Context, messageID string) (*domain.Message, error)
	CreateMessage(ctx context.Context, m *domain.Message, refs []domain.TagRef) error
	UpdateMessage(ctx context.Context, messageID, text string, refs []domain.TagRef) (*domain.Message, error)
	DeleteMessage(ctx context.Context, messageID string) error
	SyncMessageTags(ctx context.Context, messageID string, refs []domain.TagRef) ([]*domain.Tag, error)
	GetMessageTags(ctx context.Context, messageID string) ([]*domain.Tag, error)

	// Tag suggestions
	ListTagSuggestions(ctx context.Context, filter SuggestionFilter) ([]*domain.Tag, error)
	CreateTagSuggestion(ctx context.Context, s *domain.TagSuggestion) (*domain.Tag, error)

	// Inspection
	Stats(ctx context.Context, topN int) (*Stats, error)
}
