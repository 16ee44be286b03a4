package sqlstore

import (
	"context"
	"fmt"

	"github.com/chatlabs/chat-api/internal/store"
)

// Stats counts rows per table and reports the most linked tags.
func (s *Store) Stats(ctx context.Context, topN int) (*store.Stats, error) {
	st := &store.Stats{}

	counts := []struct {
		dest  *int
		query string
	}{
		{&st.Messages, `SELECT COUNT(*) FROM messages`},
		{&st.Tags, `SELECT COUNT(*) FROM tags`},
		{&st.MessageTags, `SELECT COUNT(*) FROM message_tags`},
		{&st.Suggestions, `SELECT COUNT(*) FROM tag_suggestions`},
		{&st.OrphanSuggestions, `
			SELECT COUNT(*) FROM tag_suggestions ts
			WHERE NOT EXISTS (SELECT 1 FROM tags t WHERE t.value = ts.value)`},
		{&st.UnreferencedTags, `
			SELECT COUNT(*) FROM tags t
			WHERE NOT EXISTS (SELECT 1 FROM message_tags mt WHERE mt.tag_id = t.id)
			  AND NOT EXISTS (SELECT 1 FROM tag_suggestions ts WHERE ts.value = t.value)`},
	}
	for _, c := range counts {
		if err := s.conn.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	if topN <= 0 {
		return st, nil
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT t.id, t.type, t.value, t.display, t.color, t.created_at, COUNT(mt.message_id) AS uses
		FROM tags t
		JOIN message_tags mt ON mt.tag_id = t.id
		GROUP BY t.id, t.type, t.value, t.display, t.color, t.created_at
		ORDER BY uses DESC, t.value ASC
		LIMIT ?`, topN)
	if err != nil {
		return nil, fmt.Errorf("query most linked tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var uses int
		t, err := scanTag(suffixScanner{dest: &uses, rows: rows})
		if err != nil {
			return nil, fmt.Errorf("scan tag usage: %w", err)
		}
		st.MostLinked = append(st.MostLinked, store.TagUsage{Tag: t, Messages: uses})
	}
	return st, rows.Err()
}

// suffixScanner scans one trailing column into dest after the tag columns.
type suffixScanner struct {
	dest *int
	rows interface{ Scan(dest ...any) error }
}

func (p suffixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append(dest, p.dest)...)
}
