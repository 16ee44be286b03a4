package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTagSuggestions",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tag suggestions",
		Description: "Returns up to 25 suggested tags ordered by value, filtered by trigger and search text",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTagSuggestion",
		Method:        http.MethodPost,
		Path:          "/api/tags",
		Summary:       "Create tag suggestion",
		Description:   "Registers a tag as a suggestion for a trigger, creating the tag if needed",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTagSuggestion",
		Method:      http.MethodPut,
		Path:        "/api/tags/{id}",
		Summary:     "Update tag",
		Description: "Partially updates a tag; omitted fields are left unchanged",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTagSuggestion",
		Method:        http.MethodDelete,
		Path:          "/api/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes a tag and its message links",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTag)
}

// === DTOs ===

// ListTagsInput contains parameters for listing tag suggestions.
type ListTagsInput struct {
	Trigger string `query:"trigger" doc:"Exact trigger character, e.g. # or @"`
	Search  string `query:"search" doc:"Case-insensitive substring of the tag value"`
	Input   string `query:"input" doc:"Alias for search"`
}

// TagListOutput wraps a list of tags for Huma.
type TagListOutput struct {
	Body []TagView
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body TagView
}

// CreateTagRequest is the request body for creating a tag suggestion.
type CreateTagRequest struct {
	_       struct{} `additionalProperties:"true"`
	Tag     string   `json:"tag,omitempty" doc:"Tag value (required)"`
	Value   string   `json:"value,omitempty" doc:"Alias for tag"`
	Type    string   `json:"type,omitempty" doc:"user or topic (default topic)"`
	Trigger string   `json:"trigger,omitempty" doc:"Trigger character (default #)"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// UpdateTagRequest is the request body for updating a tag.
type UpdateTagRequest struct {
	_     struct{} `additionalProperties:"true"`
	Tag   *string  `json:"tag,omitempty" doc:"New tag value"`
	Value *string  `json:"value,omitempty" doc:"Alias for tag"`
	Type  *string  `json:"type,omitempty" doc:"New type: user or topic"`
	Color *string  `json:"color,omitempty" doc:"Display color override as #rrggbb; empty string clears it"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body UpdateTagRequest
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*TagListOutput, error) {
	search := input.Search
	if search == "" {
		search = input.Input
	}

	tags, err := s.services.Tag.List(ctx, service.ListTagsRequest{
		Trigger: input.Trigger,
		Search:  search,
	})
	if err != nil {
		return nil, s.fail(err)
	}

	return &TagListOutput{Body: newTagViews(tags)}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	tag := input.Body.Tag
	if tag == "" {
		tag = input.Body.Value
	}

	t, err := s.services.Tag.Create(ctx, service.CreateTagRequest{
		Tag:     tag,
		Type:    domain.TagType(input.Body.Type),
		Trigger: input.Body.Trigger,
	})
	if err != nil {
		return nil, s.fail(err)
	}

	return &TagOutput{Body: newTagView(t)}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	req := service.UpdateTagRequest{
		Tag:   input.Body.Tag,
		Color: input.Body.Color,
	}
	if req.Tag == nil {
		req.Tag = input.Body.Value
	}
	if input.Body.Type != nil {
		typ := domain.TagType(*input.Body.Type)
		req.Type = &typ
	}

	t, err := s.services.Tag.Update(ctx, input.ID, req)
	if err != nil {
		return nil, s.fail(err)
	}

	return &TagOutput{Body: newTagView(t)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*struct{}, error) {
	if err := s.services.Tag.Delete(ctx, input.ID); err != nil {
		return nil, s.fail(err)
	}
	return nil, nil
}
