package sqlstore

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/store"
)

func tagValues(tags []*domain.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Value
	}
	return out
}

func refs(names ...string) []domain.TagRef {
	out := make([]domain.TagRef, len(names))
	for i, n := range names {
		out[i] = domain.TagRef{Name: n, Type: domain.TagTypeTopic}
	}
	return out
}

func TestSyncMessageTags_ReplacesSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := makeTestMessage("u1", "hello", 0)
	if err := s.CreateMessage(ctx, m, refs("a")); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	got, err := s.SyncMessageTags(ctx, m.ID, refs("b"))
	if err != nil {
		t.Fatalf("SyncMessageTags: %v", err)
	}
	if !slices.Equal(tagValues(got), []string{"b"}) {
		t.Errorf("got %v, want [b]", tagValues(got))
	}

	// Tag "a" survives without links.
	if _, err := s.GetTagByValue(ctx, "a"); err != nil {
		t.Errorf("tag a should still exist: %v", err)
	}

	got, err = s.SyncMessageTags(ctx, m.ID, nil)
	if err != nil {
		t.Fatalf("SyncMessageTags empty: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tags, got %v", tagValues(got))
	}
}

func TestSyncMessageTags_SortedAndDeduped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := makeTestMessage("u1", "hello", 0)
	if err := s.CreateMessage(ctx, m, refs("zeta", "alpha", "zeta", "mid")); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	if !slices.Equal(tagValues(m.Tags), []string{"alpha", "mid", "zeta"}) {
		t.Errorf("got %v", tagValues(m.Tags))
	}

	var links int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM message_tags WHERE message_id = ?", m.ID).Scan(&links); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 3 {
		t.Errorf("expected 3 links, got %d", links)
	}
}

func TestSyncMessageTags_OtherMessagesUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m1 := makeTestMessage("u1", "one", 0)
	m2 := makeTestMessage("u2", "two", 1)
	if err := s.CreateMessage(ctx, m1, refs("shared", "x")); err != nil {
		t.Fatalf("CreateMessage m1: %v", err)
	}
	if err := s.CreateMessage(ctx, m2, refs("shared")); err != nil {
		t.Fatalf("CreateMessage m2: %v", err)
	}

	if _, err := s.SyncMessageTags(ctx, m1.ID, nil); err != nil {
		t.Fatalf("SyncMessageTags: %v", err)
	}

	got, err := s.GetMessageTags(ctx, m2.ID)
	if err != nil {
		t.Fatalf("GetMessageTags: %v", err)
	}
	if !slices.Equal(tagValues(got), []string{"shared"}) {
		t.Errorf("m2 tags changed: %v", tagValues(got))
	}
}

func TestSyncMessageTags_UnknownMessage(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SyncMessageTags(context.Background(), "msg-missing", refs("a"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Nothing was resolved because the transaction rolled back.
	if _, err := s.GetTagByValue(context.Background(), "a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("tag a should not exist, got %v", err)
	}
}

func TestSyncMessageTags_InvalidRefRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := makeTestMessage("u1", "hello", 0)
	if err := s.CreateMessage(ctx, m, refs("keep")); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	_, err := s.SyncMessageTags(ctx, m.ID, refs("fresh", ""))
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := s.GetMessageTags(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMessageTags: %v", err)
	}
	if !slices.Equal(tagValues(got), []string{"keep"}) {
		t.Errorf("tags changed despite failure: %v", tagValues(got))
	}
	if _, err := s.GetTagByValue(ctx, "fresh"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("tag fresh should have rolled back, got %v", err)
	}
}
