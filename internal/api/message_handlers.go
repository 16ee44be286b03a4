package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/service"
)

func (s *Server) registerMessageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMessages",
		Method:      http.MethodGet,
		Path:        "/api/messages",
		Summary:     "List messages",
		Description: "Returns a page of messages, newest first, with their tags",
		Tags:        []string{"Messages"},
	}, s.handleListMessages)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createMessage",
		Method:        http.MethodPost,
		Path:          "/api/messages",
		Summary:       "Create message",
		Description:   "Posts a message and links its tags, creating tags that do not exist yet",
		Tags:          []string{"Messages"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateMessage)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMessage",
		Method:      http.MethodPut,
		Path:        "/api/messages/{id}",
		Summary:     "Update message",
		Description: "Replaces the message text and its complete tag set",
		Tags:        []string{"Messages"},
	}, s.handleUpdateMessage)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteMessage",
		Method:        http.MethodDelete,
		Path:          "/api/messages/{id}",
		Summary:       "Delete message",
		Description:   "Deletes a message and its tag links. Tags themselves are kept",
		Tags:          []string{"Messages"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteMessage)
}

// === DTOs ===

// ListMessagesInput contains parameters for listing messages.
type ListMessagesInput struct {
	Page  int `query:"page" default:"1" doc:"1-based page number; values below 1 are treated as 1"`
	Limit int `query:"limit" default:"20" doc:"Page size; clamped to 1..100"`
}

// MessageListOutput wraps a list of messages for Huma.
type MessageListOutput struct {
	Body []MessageView
}

// MessageOutput wraps a single message for Huma.
type MessageOutput struct {
	Body MessageView
}

// TagInputBody references a tag by value. "value" is accepted as an alias of "tag".
type TagInputBody struct {
	_     struct{} `additionalProperties:"true"`
	Tag   string   `json:"tag,omitempty" doc:"Tag value"`
	Value string   `json:"value,omitempty" doc:"Alias for tag"`
	Type  string   `json:"type,omitempty" doc:"Tag type: user or topic (default topic)"`
}

// name returns the tag value, preferring "tag" over its alias.
func (b TagInputBody) name() string {
	if b.Tag != "" {
		return b.Tag
	}
	return b.Value
}

// CreateMessageRequest is the request body for posting a message.
type CreateMessageRequest struct {
	_        struct{}       `additionalProperties:"true"`
	SenderID string         `json:"senderId,omitempty" doc:"Sender reference (required)"`
	Text     string         `json:"text,omitempty" doc:"Message text (required)"`
	Status   string         `json:"status,omitempty" doc:"sent, delivered or read (default sent)"`
	Tags     []TagInputBody `json:"tags,omitempty" doc:"Tags to link"`
}

// CreateMessageInput wraps the create message request for Huma.
type CreateMessageInput struct {
	Body CreateMessageRequest
}

// UpdateMessageRequest is the request body for updating a message.
type UpdateMessageRequest struct {
	_    struct{}       `additionalProperties:"true"`
	Text string         `json:"text,omitempty" doc:"Message text (required)"`
	Tags []TagInputBody `json:"tags,omitempty" doc:"Complete tag set; omitted removes every tag"`
}

// UpdateMessageInput wraps the update message request for Huma.
type UpdateMessageInput struct {
	ID   string `path:"id" doc:"Message ID"`
	Body UpdateMessageRequest
}

// DeleteMessageInput contains parameters for deleting a message.
type DeleteMessageInput struct {
	ID string `path:"id" doc:"Message ID"`
}

// === Handlers ===

func (s *Server) handleListMessages(ctx context.Context, input *ListMessagesInput) (*MessageListOutput, error) {
	messages, err := s.services.Message.List(ctx, service.ListMessagesRequest{
		Page:  &input.Page,
		Limit: &input.Limit,
	})
	if err != nil {
		return nil, s.fail(err)
	}

	resp := make([]MessageView, len(messages))
	for i, m := range messages {
		resp[i] = newMessageView(m)
	}

	return &MessageListOutput{Body: resp}, nil
}

func (s *Server) handleCreateMessage(ctx context.Context, input *CreateMessageInput) (*MessageOutput, error) {
	m, err := s.services.Message.Create(ctx, service.CreateMessageRequest{
		SenderID: input.Body.SenderID,
		Text:     input.Body.Text,
		Status:   domain.MessageStatus(input.Body.Status),
		Tags:     toTagInputs(input.Body.Tags),
	})
	if err != nil {
		return nil, s.fail(err)
	}

	return &MessageOutput{Body: newMessageView(m)}, nil
}

func (s *Server) handleUpdateMessage(ctx context.Context, input *UpdateMessageInput) (*MessageOutput, error) {
	m, err := s.services.Message.Update(ctx, input.ID, service.UpdateMessageRequest{
		Text: input.Body.Text,
		Tags: toTagInputs(input.Body.Tags),
	})
	if err != nil {
		return nil, s.fail(err)
	}

	return &MessageOutput{Body: newMessageView(m)}, nil
}

func (s *Server) handleDeleteMessage(ctx context.Context, input *DeleteMessageInput) (*struct{}, error) {
	if err := s.services.Message.Delete(ctx, input.ID); err != nil {
		return nil, s.fail(err)
	}
	return nil, nil
}

func toTagInputs(in []TagInputBody) []service.TagInput {
	out := make([]service.TagInput, len(in))
	for i, t := range in {
		out[i] = service.TagInput{
			Tag:  t.name(),
			Type: domain.TagType(t.Type),
		}
	}
	return out
}
