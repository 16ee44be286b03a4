package service

import (
	"context"
	"log/slog"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/store"
	"github.com/chatlabs/chat-api/internal/validation"
)

// DefaultTrigger is the trigger used when a suggestion omits one.
const DefaultTrigger = "#"

// ListTagsRequest filters suggestion lookups. Empty fields do not filter.
type ListTagsRequest struct {
	Trigger string
	Search  string
}

// CreateTagRequest registers a tag as an autocomplete suggestion.
type CreateTagRequest struct {
	Tag     string         `json:"tag" validate:"notblank"`
	Type    domain.TagType `json:"type" validate:"omitempty,oneof=user topic"`
	Trigger string         `json:"trigger"`
}

// UpdateTagRequest is a partial tag update. Nil fields are left unchanged.
type UpdateTagRequest struct {
	Tag   *string         `json:"tag" validate:"omitnil,notblank"`
	Type  *domain.TagType `json:"type" validate:"omitnil,oneof=user topic"`
	Color *string         `json:"color" validate:"omitempty,hexcolor"` // "" clears the override
}

// TagService orchestrates tag suggestion operations.
// Tags are global: every message and suggestion shares the same canonical rows.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// List returns suggested tags ordered by value.
func (s *TagService) List(ctx context.Context, req ListTagsRequest) ([]*domain.Tag, error) {
	return s.store.ListTagSuggestions(ctx, store.SuggestionFilter{
		Trigger: req.Trigger,
		Search:  req.Search,
	})
}

// Create resolves the tag and records it as a suggestion for the trigger.
// Creating the same suggestion twice returns the same tag.
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	sg := &domain.TagSuggestion{
		Trigger: req.Trigger,
		Value:   req.Tag,
		Type:    req.Type,
	}
	if sg.Trigger == "" {
		sg.Trigger = DefaultTrigger
	}
	if sg.Type == "" {
		sg.Type = domain.TagTypeTopic
	}

	tag, err := s.store.CreateTagSuggestion(ctx, sg)
	if err != nil {
		return nil, translateStoreError(err, "Tag not found")
	}

	s.logger.Info("tag suggestion created",
		"tag_id", tag.ID,
		"trigger", sg.Trigger,
		"value", tag.Value,
	)

	return tag, nil
}

// Update applies a partial update to a tag.
func (s *TagService) Update(ctx context.Context, tagID string, req UpdateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.store.UpdateTag(ctx, tagID, store.TagUpdate{
		Value: req.Tag,
		Type:  req.Type,
		Color: req.Color,
	})
	if err != nil {
		return nil, translateStoreError(err, "Tag not found")
	}

	s.logger.Info("tag updated", "tag_id", tag.ID, "value", tag.Value)
	return tag, nil
}

// Delete removes a tag. Its message links go with it; suggestions remain.
func (s *TagService) Delete(ctx context.Context, tagID string) error {
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return translateStoreError(err, "Tag not found")
	}

	s.logger.Debug("tag deleted", "tag_id", tagID)
	return nil
}
