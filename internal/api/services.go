package api

import "github.com/chatlabs/chat-api/internal/service"

// Services groups the business logic services used by the API server.
type Services struct {
	Message *service.MessageService
	Tag     *service.TagService
}
