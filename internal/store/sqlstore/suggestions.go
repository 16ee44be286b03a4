package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/store"
)

// ListTagSuggestions returns tags that have at least one suggestion row,
// filtered by exact trigger and case-insensitive substring of the value.
// Results are distinct, ordered by value and capped at store.MaxSuggestions.
func (s *Store) ListTagSuggestions(ctx context.Context, filter store.SuggestionFilter) ([]*domain.Tag, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Trigger != "" {
		conds = append(conds, `ts.trigger_char = ?`)
		args = append(args, filter.Trigger)
	}
	if filter.Search != "" {
		conds = append(conds, `LOWER(t.value) LIKE '%' || LOWER(?) || '%' ESCAPE '\'`)
		args = append(args, escapeLike(filter.Search))
	}

	query := `
		SELECT DISTINCT t.id, t.type, t.value, t.display, t.color, t.created_at
		FROM tag_suggestions ts
		JOIN tags t ON t.value = ts.value`
	if len(conds) > 0 {
		query += `
		WHERE ` + strings.Join(conds, " AND ")
	}
	query += `
		ORDER BY t.value ASC
		LIMIT ?`
	args = append(args, store.MaxSuggestions)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tag suggestions: %w", err)
	}
	return scanTags(rows)
}

// CreateTagSuggestion resolves the suggested value to a tag and records the
// suggestion row. Repeating an identical suggestion is a no-op. The
// canonical tag is returned.
func (s *Store) CreateTagSuggestion(ctx context.Context, sg *domain.TagSuggestion) (*domain.Tag, error) {
	if sg.Type == "" {
		sg.Type = domain.TagTypeTopic
	}
	if sg.CreatedAt.IsZero() {
		sg.CreatedAt = time.Now()
	}

	var t *domain.Tag
	err := s.withTx(ctx, func(q store.Querier) error {
		var err error
		t, err = resolveTag(ctx, q, sg.Value, sg.Type)
		if err != nil {
			return err
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO tag_suggestions (trigger_char, value, type, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (trigger_char, value, type) DO NOTHING`,
			sg.Trigger, sg.Value, string(sg.Type), formatTime(sg.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert tag suggestion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
