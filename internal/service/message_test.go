package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlabs/chat-api/internal/domain"
	domainerrors "github.com/chatlabs/chat-api/internal/errors"
)

func tagValues(tags []*domain.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Value
	}
	return out
}

func TestMessageService_Create(t *testing.T) {
	messages, _, _ := setupTestServices(t)
	ctx := context.Background()

	m, err := messages.Create(ctx, CreateMessageRequest{
		SenderID: "u1",
		Text:     "hello",
		Tags: []TagInput{
			{Tag: "zeta"},
			{Tag: "alice", Type: domain.TagTypeUser},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, m.ID, "msg-")
	assert.Equal(t, "u1", m.SenderID)
	assert.Equal(t, domain.MessageStatusSent, m.Status)
	assert.False(t, m.CreatedAt.IsZero())
	require.Len(t, m.Tags, 2)
	assert.Equal(t, []string{"alice", "zeta"}, tagValues(m.Tags))
	assert.Equal(t, domain.TagTypeUser, m.Tags[0].Type)
	assert.Equal(t, domain.TagTypeTopic, m.Tags[1].Type)
}

func TestMessageService_CreateReturnsUTC(t *testing.T) {
	messages, _, _ := setupTestServices(t)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*60*60)
	messages.now = func() time.Time { return time.Date(2024, 5, 1, 18, 0, 0, 0, tokyo) }

	created, err := messages.Create(ctx, CreateMessageRequest{SenderID: "u1", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, created.CreatedAt.Location())

	listed, err := messages.List(ctx, ListMessagesRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].CreatedAt.Equal(created.CreatedAt))
	assert.Equal(t, 9, created.CreatedAt.Hour())
}

func TestMessageService_CreateExplicitStatus(t *testing.T) {
	messages, _, _ := setupTestServices(t)

	m, err := messages.Create(context.Background(), CreateMessageRequest{
		SenderID: "u1",
		Text:     "seen",
		Status:   domain.MessageStatusRead,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageStatusRead, m.Status)
	assert.Empty(t, m.Tags)
}

func TestMessageService_ValidationFailsFast(t *testing.T) {
	messages, _ := newUntouchableServices(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateMessageRequest
		wantMsg string
	}{
		{"missing sender", CreateMessageRequest{Text: "hi"}, "senderId is required"},
		{"missing text", CreateMessageRequest{SenderID: "u1"}, "text is required"},
		{"blank text", CreateMessageRequest{SenderID: "u1", Text: "  "}, "text is required"},
		{"bad status", CreateMessageRequest{SenderID: "u1", Text: "hi", Status: "lost"}, "status must be one of"},
		{"blank tag", CreateMessageRequest{SenderID: "u1", Text: "hi", Tags: []TagInput{{Tag: ""}}}, "tags[0].tag is required"},
		{"bad tag type", CreateMessageRequest{SenderID: "u1", Text: "hi", Tags: []TagInput{{Tag: "x", Type: "room"}}}, "tags[0].type must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messages.Create(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	_, err := messages.Update(ctx, "msg-any", UpdateMessageRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestMessageService_UpdateNotFound(t *testing.T) {
	messages, _, _ := setupTestServices(t)

	_, err := messages.Update(context.Background(), "nonexistent", UpdateMessageRequest{Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Message not found")
}

func TestMessageService_List(t *testing.T) {
	messages, _, _ := setupTestServices(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		messages.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := messages.Create(ctx, CreateMessageRequest{SenderID: "u1", Text: text})
		require.NoError(t, err)
	}

	all, err := messages.List(ctx, ListMessagesRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Text)
	assert.Equal(t, "first", all[2].Text)

	page, err := messages.List(ctx, ListMessagesRequest{Page: ptr(2), Limit: ptr(2)})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "first", page[0].Text)

	// Out-of-range values are clamped rather than rejected.
	clamped, err := messages.List(ctx, ListMessagesRequest{Page: ptr(-1), Limit: ptr(-10)})
	require.NoError(t, err)
	require.Len(t, clamped, 1)
	assert.Equal(t, "third", clamped[0].Text)

	// An explicit zero is clamped too, not treated as absent.
	zero, err := messages.List(ctx, ListMessagesRequest{Page: ptr(0), Limit: ptr(0)})
	require.NoError(t, err)
	require.Len(t, zero, 1)
	assert.Equal(t, "third", zero[0].Text)
}

func TestMessageService_Delete(t *testing.T) {
	messages, _, _ := setupTestServices(t)
	ctx := context.Background()

	m, err := messages.Create(ctx, CreateMessageRequest{SenderID: "u1", Text: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, messages.Delete(ctx, m.ID))
	require.NoError(t, messages.Delete(ctx, m.ID), "deleting twice is not an error")

	all, err := messages.List(ctx, ListMessagesRequest{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMessageService_EndToEnd(t *testing.T) {
	messages, _, _ := setupTestServices(t)
	ctx := context.Background()

	created, err := messages.Create(ctx, CreateMessageRequest{
		SenderID: "u1",
		Text:     "hello",
		Tags:     []TagInput{{Tag: "#topic1", Type: domain.TagTypeTopic}},
	})
	require.NoError(t, err)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "#topic1", created.Tags[0].Value)
	assert.Equal(t, domain.TagTypeTopic, created.Tags[0].Type)

	updated, err := messages.Update(ctx, created.ID, UpdateMessageRequest{Text: "hello2", Tags: []TagInput{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)

	all, err := messages.List(ctx, ListMessagesRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "hello2", all[0].Text)
	assert.Empty(t, all[0].Tags)
}
