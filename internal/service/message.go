package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/id"
	"github.com/chatlabs/chat-api/internal/store"
	"github.com/chatlabs/chat-api/internal/validation"
)

// TagInput is a tag reference attached to a message write.
type TagInput struct {
	Tag  string         `json:"tag" validate:"notblank"`
	Type domain.TagType `json:"type" validate:"omitempty,oneof=user topic"`
}

// ListMessagesRequest selects a page of messages. Nil fields use the
// defaults; values below 1 are clamped to 1.
type ListMessagesRequest struct {
	Page  *int
	Limit *int
}

// CreateMessageRequest contains the data needed to post a message.
type CreateMessageRequest struct {
	SenderID string               `json:"senderId" validate:"notblank"`
	Text     string               `json:"text" validate:"notblank"`
	Status   domain.MessageStatus `json:"status" validate:"omitempty,oneof=sent delivered read"`
	Tags     []TagInput           `json:"tags" validate:"dive"`
}

// UpdateMessageRequest replaces a message's text and tag set.
// Omitted tags remove every existing association.
type UpdateMessageRequest struct {
	Text string     `json:"text" validate:"notblank"`
	Tags []TagInput `json:"tags" validate:"dive"`
}

// MessageService orchestrates message reads and writes.
type MessageService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewMessageService creates a new message service.
func NewMessageService(store store.Store, validator *validation.Validator, logger *slog.Logger) *MessageService {
	return &MessageService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns one page of messages, newest first.
func (s *MessageService) List(ctx context.Context, req ListMessagesRequest) ([]*domain.Message, error) {
	params := store.DefaultPageParams()
	if req.Page != nil {
		params.Page = *req.Page
	}
	if req.Limit != nil {
		params.Limit = *req.Limit
	}
	params.Normalize()

	return s.store.ListMessages(ctx, params)
}

// Create validates and stores a new message together with its tags.
func (s *MessageService) Create(ctx context.Context, req CreateMessageRequest) (*domain.Message, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	messageID, err := id.Generate(id.PrefixMessage)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.MessageStatusSent
	}

	m := &domain.Message{
		ID:        messageID,
		SenderID:  req.SenderID,
		Text:      req.Text,
		Status:    status,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.CreateMessage(ctx, m, tagRefs(req.Tags)); err != nil {
		return nil, translateStoreError(err, "Message not found")
	}

	s.logger.Info("message created",
		"message_id", m.ID,
		"sender_id", m.SenderID,
		"tag_count", len(m.Tags),
	)

	return m, nil
}

// Update replaces the text and tag set of an existing message.
func (s *MessageService) Update(ctx context.Context, messageID string, req UpdateMessageRequest) (*domain.Message, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	m, err := s.store.UpdateMessage(ctx, messageID, req.Text, tagRefs(req.Tags))
	if err != nil {
		return nil, translateStoreError(err, "Message not found")
	}

	s.logger.Info("message updated",
		"message_id", m.ID,
		"tag_count", len(m.Tags),
	)

	return m, nil
}

// Delete removes a message and its tag associations.
// Deleting an unknown message succeeds.
func (s *MessageService) Delete(ctx context.Context, messageID string) error {
	if err := s.store.DeleteMessage(ctx, messageID); err != nil {
		return translateStoreError(err, "Message not found")
	}

	s.logger.Debug("message deleted", "message_id", messageID)
	return nil
}

// tagRefs converts request tags to store references, defaulting the type to topic.
func tagRefs(in []TagInput) []domain.TagRef {
	refs := make([]domain.TagRef, len(in))
	for i, t := range in {
		typ := t.Type
		if typ == "" {
			typ = domain.TagTypeTopic
		}
		refs[i] = domain.TagRef{Name: t.Tag, Type: typ}
	}
	return refs
}
