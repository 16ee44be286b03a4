package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/store"
)

// messageColumns must match the scan order in scanMessage.
const messageColumns = `id, sender_id, content, status, created_at`

func scanMessage(scanner interface{ Scan(dest ...any) error }) (*domain.Message, error) {
	var (
		m         domain.Message
		status    string
		createdAt string
	)

	if err := scanner.Scan(&m.ID, &m.SenderID, &m.Text, &status, &createdAt); err != nil {
		return nil, err
	}

	m.Status = domain.MessageStatus(status)

	var err error
	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	m.Tags = make([]*domain.Tag, 0)
	return &m, nil
}

// scanMessages drains rows into a slice. The result is never nil.
func scanMessages(rows *sql.Rows) ([]*domain.Message, error) {
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListMessages returns one page of messages, newest first, with tags hydrated.
func (s *Store) ListMessages(ctx context.Context, params store.PageParams) ([]*domain.Message, error) {
	params.Normalize()

	rows, err := s.conn.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}

	tagsByMessage, err := getTagsForMessages(ctx, s.conn, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range messages {
		m.Tags = tagsByMessage[m.ID]
	}

	return messages, nil
}

// GetMessage retrieves a single message with its tags.
func (s *Store) GetMessage(ctx context.Context, messageID string) (*domain.Message, error) {
	m, err := getMessage(ctx, s.conn, messageID)
	if err != nil {
		return nil, err
	}

	m.Tags, err = getMessageTags(ctx, s.conn, messageID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func getMessage(ctx context.Context, q store.Querier, messageID string) (*domain.Message, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, messageID)

	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}
	return m, nil
}

// requireMessage returns ErrNotFound unless the message exists.
func requireMessage(ctx context.Context, q store.Querier, messageID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM messages WHERE id = ?`, messageID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check message %s: %w", messageID, err)
	}
	return nil
}

// CreateMessage inserts m and links its tags in one transaction.
// m.ID, m.Status and m.CreatedAt must be set by the caller; m.Tags is
// replaced with the linked tags.
func (s *Store) CreateMessage(ctx context.Context, m *domain.Message, refs []domain.TagRef) error {
	if m.Status == "" {
		m.Status = domain.MessageStatusSent
	}

	var tags []*domain.Tag
	err := s.withTx(ctx, func(q store.Querier) error {
		_, err := q.ExecContext(ctx, `
			INSERT INTO messages (`+messageColumns+`)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, m.SenderID, m.Text, string(m.Status), formatTime(m.CreatedAt),
		)
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("message already exists")
		}
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		tags, err = syncMessageTags(ctx, q, m.ID, refs)
		return err
	})
	if err != nil {
		return err
	}

	m.Tags = tags
	return nil
}

// UpdateMessage replaces the message text and its tag set in one
// transaction. Sender, status and creation time are unchanged.
func (s *Store) UpdateMessage(ctx context.Context, messageID, text string, refs []domain.TagRef) (*domain.Message, error) {
	var m *domain.Message
	err := s.withTx(ctx, func(q store.Querier) error {
		row := q.QueryRowContext(ctx, `
			UPDATE messages SET content = ?
			WHERE id = ?
			RETURNING `+messageColumns,
			text, messageID,
		)

		var err error
		m, err = scanMessage(row)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update message %s: %w", messageID, err)
		}

		m.Tags, err = syncMessageTags(ctx, q, messageID, refs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMessage removes a message and its tag links. Tags stay. Deleting an
// unknown ID is not an error.
func (s *Store) DeleteMessage(ctx context.Context, messageID string) error {
	return s.withTx(ctx, func(q store.Querier) error {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM message_tags WHERE message_id = ?`, messageID); err != nil {
			return fmt.Errorf("delete message links: %w", err)
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, messageID); err != nil {
			return fmt.Errorf("delete message: %w", err)
		}
		return nil
	})
}
