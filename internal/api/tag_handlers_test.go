package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createTag(t *testing.T, body map[string]any) TagView {
	t.Helper()
	resp := ts.api.Post("/api/tags", body)
	require.Equal(t, http.StatusCreated, resp.Code, "create failed: %s", resp.Body.String())
	return decode[TagView](t, resp)
}

func tagNames(views []TagView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Tag
	}
	return out
}

func TestCreateTag(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	tag := ts.createTag(t, map[string]any{"tag": "golang"})
	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, "golang", tag.Tag)
	assert.Equal(t, "topic", tag.Type)
	assert.Equal(t, "#38a169", tag.Color)

	again := ts.createTag(t, map[string]any{"tag": "golang"})
	assert.Equal(t, tag.ID, again.ID)

	user := ts.createTag(t, map[string]any{"value": "bob", "type": "user", "trigger": "@"})
	assert.Equal(t, "bob", user.Tag)
	assert.Equal(t, "#2b6cb0", user.Color)
}

func TestCreateTag_Validation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/tags", map[string]any{"type": "topic"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	apiErr := decode[APIError](t, resp)
	assert.Equal(t, "error", apiErr.Status)
	assert.Contains(t, apiErr.Message, "tag is required")
}

func TestListTags(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTag(t, map[string]any{"tag": "alpha"})
	ts.createTag(t, map[string]any{"tag": "albatross"})
	ts.createTag(t, map[string]any{"tag": "beta"})
	ts.createTag(t, map[string]any{"tag": "alice", "type": "user", "trigger": "@"})

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"all", "/api/tags", []string{"albatross", "alice", "alpha", "beta"}},
		{"by trigger", "/api/tags?trigger=@", []string{"alice"}},
		{"search", "/api/tags?trigger=%23&search=AL", []string{"albatross", "alpha"}},
		{"input alias", "/api/tags?input=bet", []string{"beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Equal(t, tt.want, tagNames(decode[[]TagView](t, resp)))
		})
	}
}

func TestUpdateTag(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	tag := ts.createTag(t, map[string]any{"tag": "draft"})

	resp := ts.api.Put("/api/tags/"+tag.ID, map[string]any{"type": "user"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[TagView](t, resp)
	assert.Equal(t, "draft", updated.Tag)
	assert.Equal(t, "user", updated.Type)

	resp = ts.api.Put("/api/tags/"+tag.ID, map[string]any{"tag": "final", "color": "#ff8800"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated = decode[TagView](t, resp)
	assert.Equal(t, "final", updated.Tag)
	assert.Equal(t, "#ff8800", updated.Color)
}

func TestUpdateTag_Errors(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/tags/nonexistent", map[string]any{"tag": "x"})
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Tag not found", decode[APIError](t, resp).Message)

	ts.createTag(t, map[string]any{"tag": "one"})
	two := ts.createTag(t, map[string]any{"tag": "two"})

	resp = ts.api.Put("/api/tags/"+two.ID, map[string]any{"tag": "one"})
	require.Equal(t, http.StatusConflict, resp.Code)
	apiErr := decode[APIError](t, resp)
	assert.Equal(t, http.StatusConflict, apiErr.Code)

	resp = ts.api.Put("/api/tags/"+two.ID, map[string]any{"type": "channel"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteTag(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	m := ts.createMessage(t, map[string]any{
		"senderId": "u1",
		"text":     "tagged",
		"tags":     []map[string]any{{"tag": "temp"}, {"tag": "kept"}},
	})
	require.Len(t, m.Tags, 2)
	tempID := m.Tags[1].ID // ordered by value: kept, temp

	resp := ts.api.Delete("/api/tags/" + tempID)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	list := decode[[]MessageView](t, ts.api.Get("/api/messages"))
	require.Len(t, list, 1)
	assert.Equal(t, []string{"kept"}, tagNames(list[0].Tags))
}
