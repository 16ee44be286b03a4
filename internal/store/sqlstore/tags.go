package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/id"
	"github.com/chatlabs/chat-api/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, type, value, display, color, created_at`

// scanTag scans a sql.Row (or sql.Rows via the scanner interface) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var (
		t         domain.Tag
		typ       string
		color     sql.NullString
		createdAt string
	)

	if err := scanner.Scan(&t.ID, &typ, &t.Value, &t.Display, &color, &createdAt); err != nil {
		return nil, err
	}

	t.Type = domain.TagType(typ)
	if color.Valid {
		t.Color = color.String
	}

	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &t, nil
}

// scanTags drains rows into a slice. The result is never nil.
func scanTags(rows *sql.Rows) ([]*domain.Tag, error) {
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ResolveTag returns the tag whose value equals name, creating it with typ
// when absent. Repeated or concurrent calls with the same name yield the
// same tag; the first writer's type wins.
func (s *Store) ResolveTag(ctx context.Context, name string, typ domain.TagType) (*domain.Tag, error) {
	return resolveTag(ctx, s.conn, name, typ)
}

// resolveTag is ResolveTag on an arbitrary querier so it can join a
// caller's transaction.
func resolveTag(ctx context.Context, q store.Querier, name string, typ domain.TagType) (*domain.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, store.ErrInvalidInput.WithMessage("tag name is required")
	}
	if typ == "" {
		typ = domain.TagTypeTopic
	}

	t, err := getTagByValue(ctx, q, name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return nil, err
	}

	row := q.QueryRowContext(ctx, `
		INSERT INTO tags (id, type, value, display, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (value) DO NOTHING
		RETURNING `+tagColumns,
		tagID, string(typ), name, name, formatTime(time.Now()),
	)

	t, err = scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Another writer inserted the value between our lookup and insert.
		return getTagByValue(ctx, q, name)
	}
	if err != nil {
		return nil, fmt.Errorf("insert tag %q: %w", name, err)
	}
	return t, nil
}

// GetTagByID retrieves a tag by its ID.
func (s *Store) GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, tagID)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag %s: %w", tagID, err)
	}
	return t, nil
}

// GetTagByValue retrieves a tag by its exact value.
func (s *Store) GetTagByValue(ctx context.Context, value string) (*domain.Tag, error) {
	return getTagByValue(ctx, s.conn, value)
}

func getTagByValue(ctx context.Context, q store.Querier, value string) (*domain.Tag, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE value = ?`, value)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag by value %q: %w", value, err)
	}
	return t, nil
}

// UpdateTag applies a partial update of value, type and color. Renaming a tag also renames its
// display form; renaming onto an existing value returns ErrAlreadyExists.
func (s *Store) UpdateTag(ctx context.Context, tagID string, upd store.TagUpdate) (*domain.Tag, error) {
	var value, typ sql.NullString
	if upd.Value != nil {
		value = sql.NullString{String: *upd.Value, Valid: true}
	}
	if upd.Type != nil {
		typ = sql.NullString{String: string(*upd.Type), Valid: true}
	}

	// A NULL color parameter keeps the override; an empty one clears it.
	var color sql.NullString
	if upd.Color != nil {
		color = sql.NullString{String: *upd.Color, Valid: true}
	}

	row := s.conn.QueryRowContext(ctx, `
		UPDATE tags SET
			value = COALESCE(?, value),
			display = COALESCE(?, display),
			type = COALESCE(?, type),
			color = CASE WHEN CAST(? AS TEXT) IS NULL THEN color ELSE NULLIF(CAST(? AS TEXT), '') END
		WHERE id = ?
		RETURNING `+tagColumns,
		value, value, typ, color, color, tagID,
	)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %q already exists", value.String))
	}
	if err != nil {
		return nil, fmt.Errorf("update tag %s: %w", tagID, err)
	}
	return t, nil
}

// DeleteTag removes a tag and every message link to it.
// Suggestions are keyed by value and are left in place. Deleting an unknown
// ID is not an error.
func (s *Store) DeleteTag(ctx context.Context, tagID string) error {
	return s.withTx(ctx, func(q store.Querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM message_tags WHERE tag_id = ?`, tagID); err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, tagID); err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
}
