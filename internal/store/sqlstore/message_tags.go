package sqlstore

import (
	"context"
	"fmt"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/store"
)

// SyncMessageTags makes the message's tag set equal to the resolved refs.
// Links outside the set are removed, missing ones are added, and the
// resulting tags are returned ordered by value. Other messages' links are
// never touched.
func (s *Store) SyncMessageTags(ctx context.Context, messageID string, refs []domain.TagRef) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := s.withTx(ctx, func(q store.Querier) error {
		if err := requireMessage(ctx, q, messageID); err != nil {
			return err
		}
		var err error
		tags, err = syncMessageTags(ctx, q, messageID, refs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func syncMessageTags(ctx context.Context, q store.Querier, messageID string, refs []domain.TagRef) ([]*domain.Tag, error) {
	seen := make(map[string]struct{}, len(refs))
	tagIDs := make([]string, 0, len(refs))
	for _, ref := range refs {
		t, err := resolveTag(ctx, q, ref.Name, ref.Type)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		tagIDs = append(tagIDs, t.ID)
	}

	// Drop links that are no longer wanted.
	if len(tagIDs) == 0 {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM message_tags WHERE message_id = ?`, messageID); err != nil {
			return nil, fmt.Errorf("clear message tags: %w", err)
		}
	} else {
		args := make([]any, 0, len(tagIDs)+1)
		args = append(args, messageID)
		for _, tagID := range tagIDs {
			args = append(args, tagID)
		}
		query := `DELETE FROM message_tags WHERE message_id = ? AND tag_id NOT IN (` + placeholders(len(tagIDs)) + `)`
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("prune message tags: %w", err)
		}
	}

	// Add links that are missing.
	for _, tagID := range tagIDs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO message_tags (message_id, tag_id) VALUES (?, ?)
			ON CONFLICT (message_id, tag_id) DO NOTHING`,
			messageID, tagID,
		); err != nil {
			return nil, fmt.Errorf("link tag %s: %w", tagID, err)
		}
	}

	return getMessageTags(ctx, q, messageID)
}

// GetMessageTags returns the tags linked to a message, ordered by value.
func (s *Store) GetMessageTags(ctx context.Context, messageID string) ([]*domain.Tag, error) {
	return getMessageTags(ctx, s.conn, messageID)
}

func getMessageTags(ctx context.Context, q store.Querier, messageID string) ([]*domain.Tag, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.id, t.type, t.value, t.display, t.color, t.created_at
		FROM message_tags mt
		JOIN tags t ON t.id = mt.tag_id
		WHERE mt.message_id = ?
		ORDER BY t.value ASC`, messageID)
	if err != nil {
		return nil, fmt.Errorf("query message tags: %w", err)
	}
	return scanTags(rows)
}

// getTagsForMessages batch-loads tags for many messages in a single query.
// Every requested message ID is present in the result, possibly with an
// empty slice.
func getTagsForMessages(ctx context.Context, q store.Querier, messageIDs []string) (map[string][]*domain.Tag, error) {
	result := make(map[string][]*domain.Tag, len(messageIDs))
	if len(messageIDs) == 0 {
		return result, nil
	}
	for _, mid := range messageIDs {
		result[mid] = make([]*domain.Tag, 0)
	}

	args := make([]any, len(messageIDs))
	for i, mid := range messageIDs {
		args[i] = mid
	}

	rows, err := q.QueryContext(ctx, `
		SELECT mt.message_id, t.id, t.type, t.value, t.display, t.color, t.created_at
		FROM message_tags mt
		JOIN tags t ON t.id = mt.tag_id
		WHERE mt.message_id IN (`+placeholders(len(messageIDs))+`)
		ORDER BY mt.message_id, t.value ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags for messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var messageID string
		t, err := scanTag(prefixScanner{dest: &messageID, rows: rows})
		if err != nil {
			return nil, fmt.Errorf("scan message tag: %w", err)
		}
		result[messageID] = append(result[messageID], t)
	}
	return result, rows.Err()
}

// prefixScanner scans one leading column into dest before the tag columns.
type prefixScanner struct {
	dest *string
	rows interface{ Scan(dest ...any) error }
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append([]any{p.dest}, dest...)...)
}
